package workers

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs a fixed number of workers draining a job channel, the way the
// teacher's WorkerPool does, generalized over the job's argument/result
// type.
type Pool[T any] struct {
	size          int
	activeWorkers int32
}

// New returns a pool sized to n workers; n<=0 defaults to
// runtime.NumCPU(), matching the teacher's MemoryUsage/runtime-aware
// instrumentation style.
func New[T any](n int) *Pool[T] {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &Pool[T]{size: n}
}

// ActiveWorkers reports how many workers are currently executing a job.
func (p *Pool[T]) ActiveWorkers() int32 {
	return atomic.LoadInt32(&p.activeWorkers)
}

// Run executes jobs across the pool's workers and returns their results
// in completion order (not submission order). Run blocks until every job
// has completed or ctx is done.
func (p *Pool[T]) Run(ctx context.Context, jobs []Job[T]) []Result[T] {
	in := make(chan Job[T])
	out := make(chan Result[T], len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.size; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				atomic.AddInt32(&p.activeWorkers, 1)
				select {
				case <-ctx.Done():
					out <- Result[T]{ID: job.ID, Err: ctx.Err()}
				default:
					out <- job.execute(ctx)
				}
				atomic.AddInt32(&p.activeWorkers, -1)
			}
		}()
	}

	go func() {
		defer close(in)
		for _, j := range jobs {
			select {
			case in <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]Result[T], 0, len(jobs))
	for r := range out {
		results = append(results, r)
	}
	return results
}
