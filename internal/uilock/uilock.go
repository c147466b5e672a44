// Package uilock serializes long-running user actions such as loading and
// saving a project.
package uilock

import (
	"context"
	"sync/atomic"
)

// Lock allows one action at a time. Overlapping actions wait their turn
// instead of failing.
type Lock struct {
	sem     chan struct{}
	running atomic.Int32
	waiting atomic.Int32
}

// New returns an unlocked Lock.
func New() *Lock {
	return &Lock{sem: make(chan struct{}, 1)}
}

// Do waits for the lock, runs fn and releases the lock. If ctx ends while
// waiting, fn is not run and ctx.Err() is returned.
func (l *Lock) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	l.waiting.Add(1)
	select {
	case l.sem <- struct{}{}:
		l.waiting.Add(-1)
	case <-ctx.Done():
		l.waiting.Add(-1)
		return ctx.Err()
	}

	l.running.Add(1)
	defer func() {
		l.running.Add(-1)
		<-l.sem
	}()

	return fn(ctx)
}

// Locked reports whether an action is running.
func (l *Lock) Locked() bool {
	return l.running.Load() > 0
}

// Waiting returns the number of actions queued behind the running one.
func (l *Lock) Waiting() int {
	return int(l.waiting.Load())
}
