package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"mergington/pkg/platform/sentinel"
)

// ConcurrentResult tracks outcomes of concurrent registry operations.
type ConcurrentResult struct {
	Successes         int32
	Errors            int32
	NotFounds         int32
	AlreadyRegistered int32
	NotRegistered     int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.NotFounds + r.AlreadyRegistered + r.NotRegistered
}

// RunConcurrent executes fn in parallel goroutines and collects results.
// All goroutines are released together to maximise interleaving.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, notFounds, already, notRegistered atomic.Int32
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				notFounds.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyRegistered):
				already.Add(1)
			case errors.Is(err, sentinel.ErrNotRegistered):
				notRegistered.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes:         successes.Load(),
		Errors:            errs.Load(),
		NotFounds:         notFounds.Load(),
		AlreadyRegistered: already.Load(),
		NotRegistered:     notRegistered.Load(),
	}
}
