package repositories

import (
	"time"

	"chat-relay/domain"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// storedMessage is the CBOR shape of a message on disk. Timestamps are
// kept as Unix nanoseconds so values stay compact and timezone-free.
type storedMessage struct {
	ID      string `cbor:"1,keyasint"`
	Room    int    `cbor:"2,keyasint"`
	Sender  int64  `cbor:"3,keyasint"`
	Content string `cbor:"4,keyasint"`
	At      int64  `cbor:"5,keyasint"`
	Status  string `cbor:"6,keyasint"`
}

type storedMarker struct {
	Position string `cbor:"1,keyasint"`
	ReadAt   int64  `cbor:"2,keyasint"`
}

func encodeMessage(m domain.Message) ([]byte, error) {
	return cbor.Marshal(storedMessage{
		ID:      m.ID.String(),
		Room:    int(m.Room),
		Sender:  int64(m.Sender),
		Content: m.Content,
		At:      m.CreatedAt.UnixNano(),
		Status:  string(m.Status),
	})
}

func decodeMessage(raw []byte) (domain.Message, error) {
	var s storedMessage
	if err := cbor.Unmarshal(raw, &s); err != nil {
		return domain.Message{}, err
	}
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:        id,
		Room:      domain.RoomID(s.Room),
		Sender:    domain.UserID(s.Sender),
		Content:   s.Content,
		CreatedAt: time.Unix(0, s.At).UTC(),
		Status:    domain.Status(s.Status),
	}, nil
}

func encodeMarker(m domain.ReadMarker) ([]byte, error) {
	return cbor.Marshal(storedMarker{
		Position: string(m.Position),
		ReadAt:   m.ReadAt.UnixNano(),
	})
}

func decodeMarker(room domain.RoomID, user domain.UserID, raw []byte) (domain.ReadMarker, error) {
	var s storedMarker
	if err := cbor.Unmarshal(raw, &s); err != nil {
		return domain.ReadMarker{}, err
	}
	return domain.ReadMarker{
		Room:     room,
		User:     user,
		Position: domain.Position(s.Position),
		ReadAt:   time.Unix(0, s.ReadAt).UTC(),
	}, nil
}
