package service

import "sync"

// userLocks serializes wallet and position mutations per user. Two
// concurrent settlements for the same user would otherwise both pass
// the balance check against a stale read; a per-user mutex (not a
// global one) closes that without serializing unrelated users.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the mutex for userID, creating it on first use.
func (ul *userLocks) Lock(userID uint) {
	ul.mu.Lock()
	m, ok := ul.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		ul.locks[userID] = m
	}
	ul.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for userID.
func (ul *userLocks) Unlock(userID uint) {
	ul.mu.Lock()
	m := ul.locks[userID]
	ul.mu.Unlock()

	if m != nil {
		m.Unlock()
	}
}
