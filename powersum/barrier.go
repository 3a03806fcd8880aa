package powersum

import (
	"sync"

	"github.com/gofrs/flock"
)

// FlockBarrier is a cross-process Barrier backed by an advisory file lock
// on a dedicated lock file, separate from the state file. Acquire blocks
// until the lock is granted.
//
// Processes mutating the state without taking this lock are not defended
// against.
type FlockBarrier struct {
	lock *flock.Flock
}

// NewFlockBarrier creates a FlockBarrier on the given lock file path.
func NewFlockBarrier(path string) *FlockBarrier {
	return &FlockBarrier{lock: flock.New(path)}
}

// Acquire takes the exclusive lock, blocking until granted.
func (b *FlockBarrier) Acquire() error {
	return b.lock.Lock()
}

// Release drops the lock.
func (b *FlockBarrier) Release() error {
	return b.lock.Unlock()
}

// MutexBarrier is an in-process Barrier for tests and single-process hosts.
type MutexBarrier struct {
	mu sync.Mutex
}

// NewMutexBarrier creates a MutexBarrier.
func NewMutexBarrier() *MutexBarrier {
	return &MutexBarrier{}
}

// Acquire locks the barrier.
func (b *MutexBarrier) Acquire() error {
	b.mu.Lock()
	return nil
}

// Release unlocks the barrier.
func (b *MutexBarrier) Release() error {
	b.mu.Unlock()
	return nil
}
