package parallel

import (
	"context"
	"sort"
	"sync"
)

// Result is the outcome of one submitted unit of work.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Pool runs submitted functions on a bounded number of goroutines and
// collects their results. Units of work must be independent of each
// other; Wait returns them sorted by submission index.
type Pool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	results    []Result[T]
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewPool creates a pool with at most maxWorkers concurrent workers.
// If maxWorkers is 0, concurrency is unbounded.
func NewPool[T any](ctx context.Context, maxWorkers int) *Pool[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &Pool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
		results:    make([]Result[T], 0),
	}
}

// Submit schedules fn for execution under the given submission index.
// Work submitted after the pool's context is cancelled is dropped.
func (p *Pool[T]) Submit(index int, fn func() (T, error)) {
	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		value, err := fn()

		p.mu.Lock()
		defer p.mu.Unlock()
		p.results = append(p.results, Result[T]{Index: index, Value: value, Err: err})
	}()
}

// Wait blocks until all submitted work has finished and returns the
// results sorted by submission index.
func (p *Pool[T]) Wait() []Result[T] {
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	results := make([]Result[T], len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}

// Cancel drops all work that has not started yet.
func (p *Pool[T]) Cancel() {
	p.cancel()
}
