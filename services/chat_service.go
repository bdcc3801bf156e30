//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"

	"chat-relay/contract"
	"chat-relay/domain"
	chaterrors "chat-relay/errors"
	"chat-relay/repositories"

	"github.com/google/uuid"
)

type IChatService interface {
	Submit(ctx context.Context, cmd domain.SubmitMessageCommand) (domain.Message, error)
	MessageStatus(id uuid.UUID) (domain.Message, error)
	GetMessages(cmd domain.GetMessageCommand) ([]domain.Message, *string, error)
	MarkMessageAsRead(ctx context.Context, messageID uuid.UUID, user domain.UserID) error
	MarkAllMessagesAsRead(ctx context.Context, cmd domain.MarkAllReadCommand) error
	IncrementUnreadCount(ctx context.Context, room domain.RoomID, user domain.UserID) error
	JoinRoom(user domain.UserID, room domain.RoomID)
	LeaveRoom(user domain.UserID, room domain.RoomID)
	Connect(user domain.UserID, sink contract.NoticeSink)
	Disconnect(user domain.UserID)
}

// ChatService is the thin facade the transport layer talks to. It owns no
// logic beyond membership checks; delivery lives in the pipeline, read
// bookkeeping in the tracker.
type ChatService struct {
	pipeline contract.IPipeline
	tracker  contract.IReadTracker
	registry contract.IRegistry
	messages repositories.IMessageRepository
}

func NewChatService(
	pipeline contract.IPipeline,
	tracker contract.IReadTracker,
	registry contract.IRegistry,
	messages repositories.IMessageRepository,
) *ChatService {
	return &ChatService{pipeline: pipeline, tracker: tracker, registry: registry, messages: messages}
}

func (s *ChatService) Submit(ctx context.Context, cmd domain.SubmitMessageCommand) (domain.Message, error) {
	if !s.registry.IsMember(domain.UserID(cmd.Sender), cmd.RoomID()) {
		return domain.Message{}, chaterrors.ErrNotAMember
	}
	return s.pipeline.Submit(ctx, cmd)
}

func (s *ChatService) MessageStatus(id uuid.UUID) (domain.Message, error) {
	return s.pipeline.Status(id)
}

func (s *ChatService) GetMessages(cmd domain.GetMessageCommand) ([]domain.Message, *string, error) {
	return s.messages.GetMessages(cmd.Room, cmd.Cursor)
}

func (s *ChatService) MarkMessageAsRead(ctx context.Context, messageID uuid.UUID, user domain.UserID) error {
	return s.tracker.MarkMessageAsRead(ctx, messageID, user)
}

func (s *ChatService) MarkAllMessagesAsRead(ctx context.Context, cmd domain.MarkAllReadCommand) error {
	if !s.registry.IsMember(domain.UserID(cmd.User), cmd.RoomID()) {
		return chaterrors.ErrNotAMember
	}
	return s.tracker.MarkAllMessagesAsRead(ctx, cmd)
}

// IncrementUnreadCount is invoked by the pipeline on delivery; it is also
// exposed here for administrative correction of a drifted counter.
func (s *ChatService) IncrementUnreadCount(ctx context.Context, room domain.RoomID, user domain.UserID) error {
	if !s.registry.IsMember(user, room) {
		return chaterrors.ErrNotAMember
	}
	return s.tracker.IncrementUnreadCount(ctx, room, user)
}

func (s *ChatService) JoinRoom(user domain.UserID, room domain.RoomID) {
	s.registry.Join(user, room)
}

func (s *ChatService) LeaveRoom(user domain.UserID, room domain.RoomID) {
	s.registry.Leave(user, room)
}

func (s *ChatService) Connect(user domain.UserID, sink contract.NoticeSink) {
	s.registry.Attach(user, sink)
}

func (s *ChatService) Disconnect(user domain.UserID) {
	s.registry.Detach(user)
}
