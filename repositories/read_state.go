//go:generate go run go.uber.org/mock/mockgen -source=read_state.go -destination=../mocks/mock_read_state_repository.go -package=mocks
package repositories

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/domain"

	"github.com/dgraph-io/badger/v4"
)

type IReadStateRepository interface {
	Marker(room domain.RoomID, user domain.UserID) (domain.ReadMarker, bool, error)
	SetMarker(marker domain.ReadMarker) error
	UnreadCount(room domain.RoomID, user domain.UserID) (uint64, error)
	SetUnreadCount(room domain.RoomID, user domain.UserID, count uint64) error
	ClaimRequest(room domain.RoomID, user domain.UserID, requestID string) (bool, error)
}

// ReadStateRepository persists read markers, unread counters and
// idempotency tokens. Keys:
//
//	read:{room}:{user}          -> CBOR marker (position + read time)
//	unread:{room}:{user}        -> big endian uint64
//	req:{room}:{user}:{token}   -> empty, with TTL
//
// The repository performs no locking: callers serialize per-(room, user)
// mutations through the tracker's keyed mutex.
type ReadStateRepository struct {
	db         *badger.DB
	log        *slog.Logger
	requestTTL time.Duration
}

func NewReadStateRepository(db *badger.DB, log *slog.Logger, requestTTL time.Duration) ReadStateRepository {
	return ReadStateRepository{db: db, log: log, requestTTL: requestTTL}
}

func (r ReadStateRepository) Marker(room domain.RoomID, user domain.UserID) (domain.ReadMarker, bool, error) {
	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(markerKey(room, user))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			raw = append(raw, v...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.ReadMarker{Room: room, User: user}, false, nil
	}
	if err != nil {
		return domain.ReadMarker{}, false, err
	}
	marker, err := decodeMarker(room, user, raw)
	return marker, err == nil, err
}

// SetMarker stores a read marker. Monotonicity (a marker never moves
// backward) is enforced by the tracker before calling here, so the
// repository stays a dumb write.
func (r ReadStateRepository) SetMarker(marker domain.ReadMarker) error {
	bytes, err := encodeMarker(marker)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(markerKey(marker.Room, marker.User), bytes)
	})
}

func (r ReadStateRepository) UnreadCount(room domain.RoomID, user domain.UserID) (uint64, error) {
	var count uint64
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(unreadKey(room, user))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			count = binary.BigEndian.Uint64(v)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	return count, err
}

func (r ReadStateRepository) SetUnreadCount(room domain.RoomID, user domain.UserID, count uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], count)
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(unreadKey(room, user), buf[:])
	})
}

// ClaimRequest records an idempotency token and reports whether this call
// claimed it. A false return means the same token was already applied for
// this (room, user): the caller must treat the operation as a successful
// no-op. Tokens expire after requestTTL to keep the keyspace bounded.
func (r ReadStateRepository) ClaimRequest(room domain.RoomID, user domain.UserID, requestID string) (bool, error) {
	claimed := false
	err := r.db.Update(func(txn *badger.Txn) error {
		key := requestKey(room, user, requestID)
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		entry := badger.NewEntry(key, nil)
		if r.requestTTL > 0 {
			entry = entry.WithTTL(r.requestTTL)
		}
		if err := txn.SetEntry(entry); err != nil {
			return err
		}
		claimed = true
		return nil
	})
	return claimed, err
}

func markerKey(room domain.RoomID, user domain.UserID) []byte {
	return []byte(fmt.Sprintf("read:%d:%d", room, user))
}

func unreadKey(room domain.RoomID, user domain.UserID) []byte {
	return []byte(fmt.Sprintf("unread:%d:%d", room, user))
}

func requestKey(room domain.RoomID, user domain.UserID, requestID string) []byte {
	return []byte(fmt.Sprintf("req:%d:%d:%s", room, user, requestID))
}
