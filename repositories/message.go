//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"

	chaterrors "chat-relay/errors"

	"chat-relay/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	MessageByID(id uuid.UUID) (domain.Message, error)
	LatestSaved(room domain.RoomID) (*domain.Message, error)
	CountUnreadAfter(room domain.RoomID, after domain.Position, exclude domain.UserID) (uint64, error)
	GetMessages(room int, cursor *string) ([]domain.Message, *string, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// StoreMessage persists a message in BadgerDB.
// The primary key is formatted as "msg:{room_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
//
// A secondary index "msgid:{uuid}" points back to the primary key so status
// queries and per-message read acknowledgements can resolve a bare id.
// Re-storing the same message (at-least-once delivery from the broker)
// overwrites with identical content and is therefore harmless.
//
// A stored FAILED record is terminal: the write that would flip it to any
// other status is skipped inside the same transaction, so a late delivery
// racing the watchdog can never resurrect a failed message.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	key := primaryKey(message.Room, message.Position())
	bytes, err := encodeMessage(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		if message.Status != domain.StatusFailed {
			existing, err := messageByKey(txn, key)
			if err != nil && err != badger.ErrKeyNotFound {
				return err
			}
			if err == nil && existing.Status == domain.StatusFailed {
				m.log.Warn("Refusing to overwrite terminal failure record", "id", message.ID)
				return nil
			}
		}
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(indexKey(message.ID), key)
	})
}

func messageByKey(txn *badger.Txn, key []byte) (domain.Message, error) {
	item, err := txn.Get(key)
	if err != nil {
		return domain.Message{}, err
	}
	var raw []byte
	if err := item.Value(func(v []byte) error {
		raw = append(raw, v...)
		return nil
	}); err != nil {
		return domain.Message{}, err
	}
	return decodeMessage(raw)
}

// MessageByID resolves a message through the id index.
func (m MessageRepository) MessageByID(id uuid.UUID) (domain.Message, error) {
	var raw []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(id))
		if err != nil {
			return err
		}
		var primary []byte
		if err := item.Value(func(v []byte) error {
			primary = append(primary, v...)
			return nil
		}); err != nil {
			return err
		}
		item, err = txn.Get(primary)
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			raw = append(raw, v...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.Message{}, chaterrors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	return decodeMessage(raw)
}

// LatestSaved returns the most recent SAVED message of a room, or nil when
// the room holds none. FAILED records stored for reconciliation are skipped.
func (m MessageRepository) LatestSaved(room domain.RoomID) (*domain.Message, error) {
	var latest *domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := roomPrefix(room)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key, then walk backward.
		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var raw []byte
			if err := it.Item().Value(func(v []byte) error {
				raw = append(raw, v...)
				return nil
			}); err != nil {
				return err
			}
			msg, err := decodeMessage(raw)
			if err != nil {
				return err
			}
			if msg.Status == domain.StatusSaved {
				latest = &msg
				return nil
			}
		}
		return nil
	})
	return latest, err
}

// CountUnreadAfter counts SAVED messages of the room strictly after the
// given position, skipping messages authored by exclude. This is the
// ground-truth recomputation behind the unread counter contract.
func (m MessageRepository) CountUnreadAfter(room domain.RoomID, after domain.Position, exclude domain.UserID) (uint64, error) {
	var count uint64
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := roomPrefix(room)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		seekKey := prefix
		if after != "" {
			seekKey = primaryKey(room, after)
		}
		it.Seek(seekKey)
		// The seek lands on the marker's own message when it still exists;
		// strictly-after means we skip it.
		if after != "" && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(primaryKey(room, after)) {
			it.Next()
		}
		for ; it.ValidForPrefix(prefix); it.Next() {
			var raw []byte
			if err := it.Item().Value(func(v []byte) error {
				raw = append(raw, v...)
				return nil
			}); err != nil {
				return err
			}
			msg, err := decodeMessage(raw)
			if err != nil {
				return err
			}
			if msg.Status == domain.StatusSaved && msg.Sender != exclude {
				count++
			}
		}
		return nil
	})
	return count, err
}

// GetMessages retrieves messages for a specific room using a prefix scan.
// Thanks to the padded timestamp in the key, messages are naturally sorted by time.
// It stops collecting messages once the configured limitMessages is reached.
func (m MessageRepository) GetMessages(room int, cursor *string) ([]domain.Message, *string, error) {
	var byteMessages [][]byte
	var messages []domain.Message
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := roomPrefix(domain.RoomID(room))
		prefixLen := len(prefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Let's go past the newest position msg:{room}:9999999999999999999
			// Then, we go back and find few messages
			seekKey = append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		default:
			seekKey = append(append([]byte{}, prefix...), []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(byteMessages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				break
			}
			item := it.Item()
			// Memorize cursor part of the actual key
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte{}, value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, b := range byteMessages {
		message, err := decodeMessage(b)
		if err != nil {
			return nil, nil, err
		}
		messages = append(messages, message)
	}
	return messages, &lastKey, err
}

func primaryKey(room domain.RoomID, pos domain.Position) []byte {
	return []byte(fmt.Sprintf("msg:%d:%s", room, pos))
}

func roomPrefix(room domain.RoomID) []byte {
	return []byte(fmt.Sprintf("msg:%d:", room))
}

func indexKey(id uuid.UUID) []byte {
	return []byte("msgid:" + id.String())
}
