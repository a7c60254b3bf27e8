package userlock

import (
	"sync"
	"testing"
)

func TestLockerSerializesSameUser(t *testing.T) {
	l := NewLocker()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock(7)
			counter++
			l.Unlock(7)
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestLockerIndependentUsers(t *testing.T) {
	l := NewLocker()
	l.Lock(1)

	done := make(chan struct{})
	go func() {
		// A different user must not be blocked by user 1's lock.
		l.Lock(2)
		l.Unlock(2)
		close(done)
	}()

	<-done
	l.Unlock(1)
}

func TestLockerDropsIdleEntries(t *testing.T) {
	l := NewLocker()
	l.Lock(42)
	l.Unlock(42)

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Errorf("locks map has %d entries after release, want 0", len(l.locks))
	}
}
