package core

import (
	"context"
	"sync"
)

// Result is the one-shot outcome of an asynchronous publish. It settles
// exactly once, with nil on broker acknowledgement or the fault otherwise.
type Result struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewResult returns an unsettled Result.
func NewResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Resolved returns a Result already settled with err.
func Resolved(err error) *Result {
	r := NewResult()
	r.Resolve(err)
	return r
}

// Resolve settles the result. It reports false if the result had already
// been settled, in which case err is dropped.
func (r *Result) Resolve(err error) bool {
	settled := false
	r.once.Do(func() {
		r.err = err
		close(r.done)
		settled = true
	})
	return settled
}

// Done is closed once the result settles.
func (r *Result) Done() <-chan struct{} { return r.done }

// Err returns the settled outcome, or ErrPending if the result has not
// settled yet.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return ErrPending
	}
}

// Wait blocks until the result settles or ctx is done.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
