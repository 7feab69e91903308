package rescale

// Option configures a single Resize call.
//
// Example:
//
//	// Default: all cores, no backend substitution
//	dst, err := rescale.Resize(src, 800, 600, rescale.Bilinear, rescale.RowParallel)
//
//	// Four workers, fall back to Sequential if RowParallel is unavailable
//	dst, err := rescale.Resize(src, 800, 600, rescale.Bilinear, rescale.RowParallel,
//	    rescale.WithThreads(4), rescale.WithFallback(rescale.FallbackSequential))
type Option func(*options)

// options holds per-call configuration.
type options struct {
	threads  int
	fallback FallbackPolicy
}

// defaultOptions returns the default call options.
func defaultOptions() options {
	return options{
		threads:  0, // GOMAXPROCS
		fallback: FallbackStrict,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithThreads sets the worker count for RowParallel.
// Zero or a negative value selects runtime.GOMAXPROCS(0). The value is ignored
// by Sequential and never changes the output bytes.
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = n
	}
}

// WithFallback sets what happens when the requested backend is unavailable.
func WithFallback(p FallbackPolicy) Option {
	return func(o *options) {
		o.fallback = p
	}
}
