package runner

import (
	"context"
	"sync"

	"digital.vasic.evaluator/pkg/scenario"
)

// parallelResult pairs a result with its original index so
// results can be returned in submission order.
type parallelResult struct {
	index  int
	result *scenario.Result
	err    error
}

// runParallel executes scenarios concurrently with a semaphore
// limiting maxConcurrency goroutines. Results are returned in
// the same order as the input. Scenarios that never started
// because ctx was cancelled are left out.
func runParallel(
	ctx context.Context,
	r *DefaultRunner,
	defs []*scenario.Definition,
	maxConcurrency int,
) ([]*scenario.Result, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan parallelResult, len(defs))

	var wg sync.WaitGroup

	for i, def := range defs {
		wg.Add(1)
		go func(idx int, d *scenario.Definition) {
			defer wg.Done()

			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- parallelResult{
					index: idx,
					err:   ctx.Err(),
				}
				return
			}

			result, err := r.Run(ctx, d)
			resultsCh <- parallelResult{
				index:  idx,
				result: result,
				err:    err,
			}
		}(i, def)
	}

	// Close channel after all goroutines complete.
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	// Collect results in submission order.
	ordered := make([]*scenario.Result, len(defs))
	var firstErr error

	for pr := range resultsCh {
		if pr.err != nil && firstErr == nil {
			firstErr = pr.err
		}
		ordered[pr.index] = pr.result
	}

	results := make([]*scenario.Result, 0, len(defs))
	for _, res := range ordered {
		if res != nil {
			results = append(results, res)
		}
	}

	return results, firstErr
}
