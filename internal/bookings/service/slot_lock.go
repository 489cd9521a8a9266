package service

import "sync"

// slotLock serializes admission work per (facilityID, date) key. Callers for
// different facilities or dates never contend. Entries are reference counted
// and removed once the last holder releases, so the map does not grow with
// the number of distinct slots ever seen.
type slotLock struct {
	mu    sync.Mutex
	slots map[string]*slotEntry
}

type slotEntry struct {
	mu   sync.Mutex
	refs int
}

func newSlotLock() *slotLock {
	return &slotLock{slots: make(map[string]*slotEntry)}
}

func slotKey(facilityID, date string) string {
	return facilityID + "|" + date
}

// Lock blocks until the key is exclusively held and returns the release func.
func (l *slotLock) Lock(facilityID, date string) func() {
	key := slotKey(facilityID, date)

	l.mu.Lock()
	entry, ok := l.slots[key]
	if !ok {
		entry = &slotEntry{}
		l.slots[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.slots, key)
		}
		l.mu.Unlock()
	}
}
