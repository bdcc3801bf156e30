package sink

import (
	"context"

	"chat-relay/contract"
	"chat-relay/domain"
	chaterrors "chat-relay/errors"
)

var _ contract.NoticeSink = (*ConnectionSink)(nil)

// ConnectionSink buffers notices for one live connection. The transport
// layer drains Notices and writes frames to the socket.
type ConnectionSink struct {
	Notices chan domain.RoomUpdateNotice
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{Notices: make(chan domain.RoomUpdateNotice, bufferSize)}
}

// Push is called by the room notifier.
// Notices are ephemeral: when the buffer is full the notice is dropped
// rather than blocking the notifier, and ErrNoConnection reports the
// drop. The durable truth lives in the unread counters, a later notice
// carries the fresh value.
func (s *ConnectionSink) Push(ctx context.Context, n domain.RoomUpdateNotice) error {
	select {
	case s.Notices <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return chaterrors.ErrNoConnection
	}
}
