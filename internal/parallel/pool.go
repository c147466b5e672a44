package parallel

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rokujyushi/voicevox/internal/project"
)

// Result is the outcome of decoding one project file.
type Result struct {
	Index    int
	Path     string
	Decoded  *project.Decoded
	Error    error
	Duration time.Duration
}

// WorkerPool manages concurrent decoding with bounded concurrency.
type WorkerPool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	next       int
	results    []Result
	errors     []error
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool with bounded concurrency.
// If maxWorkers is 0, unlimited workers are allowed.
// If failFast is true, the context will be cancelled on the first error.
func NewWorkerPool(ctx context.Context, maxWorkers int, failFast bool) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
		results:    make([]Result, 0),
	}
}

// Submit schedules fn for path. Work submitted after cancellation is
// skipped and produces no result.
func (p *WorkerPool) Submit(path string, fn func(ctx context.Context) (*project.Decoded, error)) {
	p.mu.Lock()
	index := p.next
	p.next++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		// Acquire semaphore slot
		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		// Check if we should still run (fail-fast or cancelled)
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		decoded, err := fn(p.ctx)
		result := Result{
			Index:    index,
			Path:     path,
			Decoded:  decoded,
			Error:    err,
			Duration: time.Since(start),
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		p.results = append(p.results, result)
		if err != nil {
			p.errors = append(p.errors, fmt.Errorf("%s: %w", path, err))
			if p.failFast {
				p.cancel()
			}
		}
	}()
}

// Wait waits for all submitted work and returns the results in submission
// order together with the errors in completion order.
func (p *WorkerPool) Wait() ([]Result, []error) {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()

	// Cancel the context to clean up
	p.cancel()

	results := make([]Result, len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	errors := make([]error, len(p.errors))
	copy(errors, p.errors)

	return results, errors
}

// Cancel cancels all pending work in the pool.
func (p *WorkerPool) Cancel() {
	p.cancel()
}
