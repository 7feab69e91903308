// Package parallel provides the fixed-size worker pool behind the
// row-parallel resampling backend.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into at most parts contiguous ranges whose lengths
// differ by at most one. The first n%parts ranges are one longer.
// Returns nil if n <= 0.
func Partition(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	parts = min(parts, n)

	base, extra := n/parts, n%parts
	ranges := make([]Range, parts)
	start := 0
	for i := range ranges {
		size := base
		if i < extra {
			size++
		}
		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}
	return ranges
}

// WorkerPool is a fixed set of goroutines, each with its own work queue.
//
// Work submitted through ParallelFor is statically assigned: the i-th range
// always goes to worker i and workers never take work from each other's
// queues.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// mu keeps Close from closing queues while ExecuteAll is sending.
	mu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), 1)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker runs everything sent to its own queue until the queue is closed.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for work := range p.workQueues[id] {
		work()
	}
}

// ParallelFor splits [0, n) with Partition across the workers and calls fn
// once per range. It blocks until every range is done.
//
// With a single range, or after Close, fn runs on the calling goroutine.
func (p *WorkerPool) ParallelFor(n int, fn func(start, end int)) {
	ranges := Partition(n, p.workers)
	if len(ranges) == 0 {
		return
	}

	if len(ranges) == 1 || !p.running.Load() {
		for _, r := range ranges {
			fn(r.Start, r.End)
		}
		return
	}

	work := make([]func(), len(ranges))
	for i, r := range ranges {
		work[i] = func() { fn(r.Start, r.End) }
	}
	p.ExecuteAll(work)
}

// ExecuteAll runs work[i] on worker i%Workers() and waits for all of them.
// If the pool is closed, the work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var completionWG sync.WaitGroup
	completionWG.Add(len(work))

	for i, fn := range work {
		p.workQueues[i%p.workers] <- func() {
			defer completionWG.Done()
			fn()
		}
	}
	p.mu.RUnlock()

	completionWG.Wait()
}

// Close stops the workers after their queued work completes.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	for _, q := range p.workQueues {
		close(q)
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
