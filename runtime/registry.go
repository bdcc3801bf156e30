// Package runtime wires the delivery pipeline together: in-flight message
// tracking, room membership, notice fan-out, and event emission. It
// orchestrates without containing domain rules.
package runtime

import (
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
)

type set map[domain.UserID]struct{}

// Registry tracks two independent facts about users:
//
//  1. room membership, which decides whose unread counters a saved
//     message bumps, and
//  2. live connections (sinks), which decide who receives notices.
//
// A member without an attached sink still accrues unread counts; their
// notices are simply dropped until they reconnect.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[domain.UserID]contract.NoticeSink
	roomMembers map[domain.RoomID]set
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[domain.UserID]contract.NoticeSink),
		roomMembers: make(map[domain.RoomID]set),
	}
}

func (r *Registry) Join(user domain.UserID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roomMembers[room]; !ok {
		r.roomMembers[room] = make(set)
	}
	r.roomMembers[room][user] = struct{}{}
}

// Leave removes a participant from a room. It cleans up empty member sets
// to prevent the room map growing over time.
func (r *Registry) Leave(user domain.UserID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.roomMembers[room]; ok {
		delete(members, user)
		if len(members) == 0 {
			delete(r.roomMembers, room)
		}
	}
}

// Attach registers a user's live connection. A user has at most one sink;
// a reconnect replaces the previous one.
func (r *Registry) Attach(user domain.UserID, sink contract.NoticeSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[user] = sink
}

func (r *Registry) Detach(user domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, user)
}

func (r *Registry) MembersOf(room domain.RoomID) []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[room]
	if !ok {
		return nil
	}
	users := make([]domain.UserID, 0, len(members))
	for user := range members {
		users = append(users, user)
	}
	return users
}

func (r *Registry) IsMember(user domain.UserID, room domain.RoomID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[room]
	if !ok {
		return false
	}
	_, ok = members[user]
	return ok
}

func (r *Registry) SinkFor(user domain.UserID) (contract.NoticeSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sessions[user]
	return sink, ok
}
