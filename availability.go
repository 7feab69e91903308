package rescale

import (
	"fmt"
	"slices"
	"sync"
)

// FallbackPolicy decides what Resolve does with an unavailable backend.
type FallbackPolicy uint8

const (
	// FallbackStrict rejects an unavailable backend with ErrBackendUnavailable.
	FallbackStrict FallbackPolicy = iota

	// FallbackSequential substitutes Sequential and logs a warning.
	FallbackSequential
)

// String returns the policy name.
func (p FallbackPolicy) String() string {
	switch p {
	case FallbackStrict:
		return "Strict"
	case FallbackSequential:
		return "Sequential"
	default:
		return "Unknown"
	}
}

// executor runs a row kernel over every output row of dst.
type executor func(rows rowsFunc, src, dst *PixelBuffer, threads int)

// registry holds the backends usable in this process.
var (
	registryMu sync.RWMutex
	executors  = make(map[Backend]executor)
)

func init() {
	registerExecutor(Sequential, runSequential)
	registerExecutor(RowParallel, runRowParallel)
}

func registerExecutor(b Backend, e executor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	executors[b] = e
}

// DisableBackend removes b from the set of available backends.
// Sequential cannot be disabled; the call is ignored for it.
// This is useful for testing and for hosts where goroutine fan-out is not
// wanted.
func DisableBackend(b Backend) {
	if b == Sequential {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(executors, b)
}

// EnableBackend restores a backend removed by DisableBackend.
func EnableBackend(b Backend) {
	switch b {
	case RowParallel:
		registerExecutor(RowParallel, runRowParallel)
	case Sequential:
		registerExecutor(Sequential, runSequential)
	}
}

// IsAvailable reports whether b can run in this process.
func IsAvailable(b Backend) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := executors[b]
	return ok
}

// Available returns the available backends in ascending order.
func Available() []Backend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	list := make([]Backend, 0, len(executors))
	for b := range executors {
		list = append(list, b)
	}
	slices.Sort(list)
	return list
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Requested is the backend the caller asked for.
	Requested Backend

	// Selected is the backend that will run.
	Selected Backend

	// Substituted is true when Selected differs from Requested.
	Substituted bool
}

// Resolve checks that b is available. If it is not, policy decides between
// an ErrBackendUnavailable error and a substitution by Sequential, which is
// logged at warn level and reported in the Resolution.
//
// An unknown backend is rejected with ErrInvalidParameters regardless of
// policy.
func Resolve(b Backend, policy FallbackPolicy) (Resolution, error) {
	if !b.IsValid() {
		return Resolution{}, fmt.Errorf("%w: unknown backend %d", ErrInvalidParameters, b)
	}
	if IsAvailable(b) {
		return Resolution{Requested: b, Selected: b}, nil
	}
	if policy != FallbackSequential {
		return Resolution{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, b)
	}

	Logger().Warn("rescale: backend unavailable, substituting Sequential",
		"requested", b.String())
	return Resolution{Requested: b, Selected: Sequential, Substituted: true}, nil
}

// lookupExecutor returns the executor registered for b.
func lookupExecutor(b Backend) (executor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := executors[b]
	return e, ok
}
