package userlock

import (
	"sync"
)

// Locker serializes ledger writes per user. Marks for different users are
// fully independent, so each user id gets its own mutex; the outer mutex only
// guards the map itself.
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{
		locks: make(map[int64]*userLock),
	}
}

// Lock acquires the write lock for a user, blocking until it is free.
func (l *Locker) Lock(userID int64) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
}

// Unlock releases the write lock for a user. The entry is dropped once no
// goroutine holds or waits on it.
func (l *Locker) Unlock(userID int64) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		l.mu.Unlock()
		return
	}
	ul.refs--
	if ul.refs == 0 {
		delete(l.locks, userID)
	}
	l.mu.Unlock()

	ul.mu.Unlock()
}
