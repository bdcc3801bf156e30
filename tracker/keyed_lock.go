// Package tracker keeps per-user read markers and unread counters
// consistent with each other. All mutations of a (room, user) pair are
// serialized through a keyed mutex: an increment and a concurrent
// mark-all-read can never interleave into a negative or stale count.
package tracker

import (
	"sync"

	"chat-relay/domain"
)

type roomUserKey struct {
	room domain.RoomID
	user domain.UserID
}

// keyedLock hands out one mutex per (room, user) pair. Entries are
// reference-counted and removed when the last holder unlocks, so the map
// does not grow with the full history of pairs ever seen.
type keyedLock struct {
	mu    sync.Mutex
	locks map[roomUserKey]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[roomUserKey]*lockEntry)}
}

func (k *keyedLock) lock(room domain.RoomID, user domain.UserID) {
	key := roomUserKey{room: room, user: user}
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedLock) unlock(room domain.RoomID, user domain.UserID) {
	key := roomUserKey{room: room, user: user}
	k.mu.Lock()
	entry := k.locks[key]
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
