package services

import (
	"context"
	"testing"

	"chat-relay/domain"
	chaterrors "chat-relay/errors"
	"chat-relay/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceFixture struct {
	service  *ChatService
	pipeline *mocks.MockIPipeline
	tracker  *mocks.MockIReadTracker
	registry *mocks.MockIRegistry
	messages *mocks.MockIMessageRepository
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	pipeline := mocks.NewMockIPipeline(ctrl)
	tracker := mocks.NewMockIReadTracker(ctrl)
	registry := mocks.NewMockIRegistry(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	return serviceFixture{
		service:  NewChatService(pipeline, tracker, registry, messages),
		pipeline: pipeline,
		tracker:  tracker,
		registry: registry,
		messages: messages,
	}
}

func TestChatService_Submit_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	// Given a sender outside the room
	f.registry.EXPECT().IsMember(domain.UserID(1), domain.RoomID(42)).Return(false).Times(1)

	_, err := f.service.Submit(context.Background(), domain.SubmitMessageCommand{Room: 42, Sender: 1, Content: "hi"})
	req.ErrorIs(err, chaterrors.ErrNotAMember)
}

func TestChatService_Submit_Forwards_To_Pipeline(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	cmd := domain.SubmitMessageCommand{Room: 42, Sender: 1, Content: "hi"}
	created := domain.Message{ID: uuid.New(), Room: 42, Sender: 1, Content: "hi", Status: domain.StatusSending}

	f.registry.EXPECT().IsMember(domain.UserID(1), domain.RoomID(42)).Return(true).Times(1)
	f.pipeline.EXPECT().Submit(gomock.Any(), cmd).Return(created, nil).Times(1)

	msg, err := f.service.Submit(context.Background(), cmd)
	req.NoError(err)
	req.Equal(created.ID, msg.ID)
	req.Equal(domain.StatusSending, msg.Status)
}

func TestChatService_MarkAll_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.registry.EXPECT().IsMember(domain.UserID(2), domain.RoomID(42)).Return(false).Times(1)

	err := f.service.MarkAllMessagesAsRead(context.Background(), domain.MarkAllReadCommand{Room: 42, User: 2, RequestID: "r"})
	req.ErrorIs(err, chaterrors.ErrNotAMember)
}

func TestChatService_IncrementUnread_Requires_Membership(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	f.registry.EXPECT().IsMember(domain.UserID(2), domain.RoomID(42)).Return(false).Times(1)

	err := f.service.IncrementUnreadCount(context.Background(), 42, 2)
	req.ErrorIs(err, chaterrors.ErrNotAMember)
}

func TestChatService_MessageStatus_Forwards(t *testing.T) {
	req := require.New(t)
	f := newServiceFixture(t)

	id := uuid.New()
	f.pipeline.EXPECT().Status(id).Return(domain.Message{ID: id, Status: domain.StatusSaved}, nil).Times(1)

	msg, err := f.service.MessageStatus(id)
	req.NoError(err)
	req.Equal(domain.StatusSaved, msg.Status)
}
