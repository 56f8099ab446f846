// Package workers is a small generic worker pool, adapted from the
// teacher's internal/workers/job.go + pool.go, repurposed here to fan out
// per-document text cleaning ahead of the single-threaded
// core indexer (spec §1's document-acquisition collaborator, spec §5's
// "no concurrent writers" applies only to the core itself).
package workers

import "context"

// JobID names a unit of work for result correlation.
type JobID string

// ExecutionFn is the work a Job performs.
type ExecutionFn[T any] func(ctx context.Context, args T) (T, error)

// Job pairs an identifier, its arguments, and the function to run.
type Job[T any] struct {
	ID   JobID
	Args T
	Fn   ExecutionFn[T]
}

// Result carries a Job's outcome back to the caller.
type Result[T any] struct {
	ID    JobID
	Value T
	Err   error
}

func (j Job[T]) execute(ctx context.Context) Result[T] {
	v, err := j.Fn(ctx, j.Args)
	return Result[T]{ID: j.ID, Value: v, Err: err}
}
