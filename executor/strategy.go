package executor

import (
	"context"
	"fmt"
	"sync"
)

// Strategy dispatches n independent tasks and blocks until all complete.
// Implementations differ only in scheduling; the output contract of the
// executor is identical across strategies.
type Strategy interface {
	// Run invokes task(i) for every i in [0, n) and returns after all
	// invocations have finished.
	Run(ctx context.Context, n int, task func(i int))
}

// pooled runs tasks on goroutines admitted by a semaphore of fixed width.
type pooled struct {
	workers int
}

// NewPooled creates a worker-pool strategy with the given width.
// Returns an error if workers is not positive.
func NewPooled(workers int) (Strategy, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("executor: worker count must be positive, got %d", workers)
	}
	return &pooled{workers: workers}, nil
}

func (p *pooled) Run(ctx context.Context, n int, task func(i int)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.workers)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			task(idx)
		}(i)
	}
	wg.Wait()
}

// sequential runs tasks one after another on the calling goroutine.
// It is the fallback when the pooled strategy cannot be constructed, and
// can be selected explicitly for deterministic debugging.
type sequential struct{}

// NewSequential creates the strictly sequential strategy.
func NewSequential() Strategy {
	return sequential{}
}

func (sequential) Run(ctx context.Context, n int, task func(i int)) {
	for i := 0; i < n; i++ {
		task(i)
	}
}
