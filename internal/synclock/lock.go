// Package synclock provides the single-flight guard around sync runs.
package synclock

import (
	"context"
	"sync"
)

// Locker grants exclusive access to a sync run. TryLock never waits: it
// reports false when the lock is already held. The returned release func is
// only valid when ok is true.
type Locker interface {
	TryLock(ctx context.Context) (release func(), ok bool, err error)
}

// Local guards sync runs within one process.
type Local struct {
	mu sync.Mutex
}

// NewLocal returns a process-wide lock.
func NewLocal() *Local {
	return &Local{}
}

func (l *Local) TryLock(ctx context.Context) (func(), bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}
	return l.mu.Unlock, true, nil
}
