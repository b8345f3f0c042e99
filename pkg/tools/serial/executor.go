package serial

import (
	"context"
)

type Job func(ctx context.Context)

// New creates an executor which runs queued jobs one at a time,
// in the order they were queued.
func New(capacity int) *Executor {
	return &Executor{
		todo: make(chan Job, capacity),
	}
}

type Executor struct {
	todo chan Job
}

// Run executes jobs until ctx is done. Jobs left in the queue are dropped.
func (e *Executor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-e.todo:
			job(ctx)
		}
	}
}

// TryDo queues job unless the queue is full.
func (e *Executor) TryDo(job Job) bool {
	select {
	case e.todo <- job:
		return true
	default:
		return false
	}
}
