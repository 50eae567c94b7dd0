// Package worker provides the bounded-parallelism machinery for batch mode:
// a task pool, a per-domain rate limiter and the URL batch processor. A
// single extraction is always synchronous; only the fan-out across URLs is
// concurrent.
package worker

import (
	"context"
	"sync"
)

// Task is a unit of work executed on the pool.
type Task interface {
	Execute(ctx context.Context) error
}

// Run executes all tasks with at most workers goroutines and returns the
// per-task errors, index-aligned with the input. It blocks until every task
// has finished or the context is canceled; canceled tasks report ctx.Err().
func Run(ctx context.Context, workers int, tasks []Task) []error {
	if workers <= 0 {
		workers = 1
	}

	errs := make([]error, len(tasks))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = tasks[i].Execute(ctx)
			}
		}()
	}

	for i := range tasks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return errs
}
