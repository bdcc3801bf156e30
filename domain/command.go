package domain

import "time"

// SubmitMessageCommand is a sender's intent to post a message into a room.
type SubmitMessageCommand struct {
	Room      int    `validate:"required,gt=0"`
	Sender    int64  `validate:"required,gt=0"`
	Content   string `validate:"required,max=4096"`
	CreatedAt time.Time
}

func (c SubmitMessageCommand) RoomID() RoomID {
	return RoomID(c.Room)
}

// MarkAllReadCommand acknowledges every saved message of a room for a user.
// RequestID is a caller-supplied idempotency token: replaying the same
// token for the same (room, user) must not double-apply side effects.
type MarkAllReadCommand struct {
	Room      int    `validate:"required,gt=0"`
	User      int64  `validate:"required,gt=0"`
	RequestID string `validate:"required,max=128"`
}

func (c MarkAllReadCommand) RoomID() RoomID {
	return RoomID(c.Room)
}

// GetMessageCommand pages backward through a room's stored history.
type GetMessageCommand struct {
	Room   int `validate:"required,gt=0"`
	Cursor *string
}
