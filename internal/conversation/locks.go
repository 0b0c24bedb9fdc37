package conversation

import "sync"

// UserLocks provides per-user mutual exclusion. Two events from the same
// user are processed strictly one at a time for the full duration of an
// event (state reads, validation, commits, collaborator calls); events from
// different users never contend.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewUserLocks creates an empty lock set.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*userLock)}
}

// Lock acquires the lock for a user, blocking if another event for the same
// user is in flight.
func (ul *UserLocks) Lock(userID int64) {
	ul.mu.Lock()
	l, ok := ul.locks[userID]
	if !ok {
		l = &userLock{}
		ul.locks[userID] = l
	}
	l.refs++
	ul.mu.Unlock()

	l.mu.Lock()
}

// Unlock releases the lock for a user. The entry is dropped once no event
// holds or waits on it, so the map does not grow with the user population.
func (ul *UserLocks) Unlock(userID int64) {
	ul.mu.Lock()
	l, ok := ul.locks[userID]
	if ok {
		l.refs--
		if l.refs == 0 {
			delete(ul.locks, userID)
		}
	}
	ul.mu.Unlock()

	if ok {
		l.mu.Unlock()
	}
}
