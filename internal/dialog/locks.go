package dialog

import "sync"

// userLocks serializes dialog handling per user. A transition is a
// read-status, act, write-status sequence against the store; two updates for
// the same user racing through it could both consume one selection, so the
// whole sequence runs under the user's mutex. Different users never contend.
type userLocks struct {
	mu sync.Mutex
	m  map[int64]*sync.Mutex
}

func (l *userLocks) lock(telegramID int64) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[int64]*sync.Mutex)
	}
	um, ok := l.m[telegramID]
	if !ok {
		um = &sync.Mutex{}
		l.m[telegramID] = um
	}
	l.mu.Unlock()

	um.Lock()
	return um.Unlock
}
