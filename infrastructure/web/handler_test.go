package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chat-relay/domain"
	chaterrors "chat-relay/errors"
	"chat-relay/mocks"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandlerFixture(t *testing.T) (*echo.Echo, *mocks.MockIChatService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	chatService := mocks.NewMockIChatService(ctrl)
	e := echo.New()
	NewHandler(chatService, 8, slog.Default()).Register(e)
	return e, chatService
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_SubmitMessage_Accepted(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	created := domain.Message{
		ID:        uuid.New(),
		Room:      42,
		Sender:    1,
		Content:   "hi",
		CreatedAt: time.Now().UTC(),
		Status:    domain.StatusSending,
	}
	chatService.EXPECT().
		Submit(gomock.Any(), domain.SubmitMessageCommand{Room: 42, Sender: 1, Content: "hi"}).
		Return(created, nil).
		Times(1)

	rec := doJSON(e, http.MethodPost, "/rooms/42/messages", `{"senderId":1,"content":"hi"}`)

	// Submission is acknowledged, not completed
	req.Equal(http.StatusAccepted, rec.Code)

	var resp map[string]any
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal(created.ID.String(), resp["messageId"])
	req.Equal("SENDING", resp["status"])
}

func TestHandler_SubmitMessage_NonMember_Forbidden(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	chatService.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Return(domain.Message{}, chaterrors.ErrNotAMember).
		Times(1)

	rec := doJSON(e, http.MethodPost, "/rooms/42/messages", `{"senderId":1,"content":"hi"}`)
	req.Equal(http.StatusForbidden, rec.Code)
}

func TestHandler_SubmitMessage_Invalid_Room(t *testing.T) {
	req := require.New(t)
	e, _ := newHandlerFixture(t)

	rec := doJSON(e, http.MethodPost, "/rooms/zero/messages", `{"senderId":1,"content":"hi"}`)
	req.Equal(http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/rooms/0/messages", `{"senderId":1,"content":"hi"}`)
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandler_MessageStatus(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	id := uuid.New()
	chatService.EXPECT().
		MessageStatus(id).
		Return(domain.Message{ID: id, Room: 42, Sender: 1, Content: "hi", Status: domain.StatusSaved}, nil).
		Times(1)

	rec := doJSON(e, http.MethodGet, "/messages/"+id.String(), "")
	req.Equal(http.StatusOK, rec.Code)

	var resp map[string]any
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal("SAVED", resp["status"])
}

func TestHandler_MessageStatus_Unknown_ID(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	id := uuid.New()
	chatService.EXPECT().
		MessageStatus(id).
		Return(domain.Message{}, chaterrors.ErrMessageNotFound).
		Times(1)

	rec := doJSON(e, http.MethodGet, "/messages/"+id.String(), "")
	req.Equal(http.StatusNotFound, rec.Code)
}

func TestHandler_MessageStatus_Malformed_ID(t *testing.T) {
	req := require.New(t)
	e, _ := newHandlerFixture(t)

	rec := doJSON(e, http.MethodGet, "/messages/not-a-uuid", "")
	req.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandler_MarkAllRead(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	chatService.EXPECT().
		MarkAllMessagesAsRead(gomock.Any(), domain.MarkAllReadCommand{Room: 42, User: 2, RequestID: "req-1"}).
		Return(nil).
		Times(1)

	rec := doJSON(e, http.MethodPost, "/rooms/42/read-all", `{"userId":2,"requestId":"req-1"}`)
	req.Equal(http.StatusNoContent, rec.Code)
}

func TestHandler_MarkRead(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	id := uuid.New()
	chatService.EXPECT().
		MarkMessageAsRead(gomock.Any(), id, domain.UserID(2)).
		Return(nil).
		Times(1)

	rec := doJSON(e, http.MethodPost, "/messages/"+id.String()+"/read", `{"userId":2}`)
	req.Equal(http.StatusNoContent, rec.Code)
}

func TestHandler_Join_And_Leave(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	chatService.EXPECT().JoinRoom(domain.UserID(2), domain.RoomID(42)).Times(1)
	chatService.EXPECT().LeaveRoom(domain.UserID(2), domain.RoomID(42)).Times(1)

	rec := doJSON(e, http.MethodPost, "/rooms/42/join", `{"userId":2}`)
	req.Equal(http.StatusNoContent, rec.Code)

	rec = doJSON(e, http.MethodPost, "/rooms/42/leave", `{"userId":2}`)
	req.Equal(http.StatusNoContent, rec.Code)
}

func TestHandler_GetMessages_With_Cursor(t *testing.T) {
	req := require.New(t)
	e, chatService := newHandlerFixture(t)

	cursor := "0000000000000000042:" + uuid.NewString()
	next := "0000000000000000041:" + uuid.NewString()
	chatService.EXPECT().
		GetMessages(domain.GetMessageCommand{Room: 42, Cursor: &cursor}).
		Return([]domain.Message{{ID: uuid.New(), Room: 42, Status: domain.StatusSaved}}, &next, nil).
		Times(1)

	rec := doJSON(e, http.MethodGet, "/rooms/42/messages?cursor="+cursor, "")
	req.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Messages []map[string]any `json:"messages"`
		Cursor   *string          `json:"cursor"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Len(resp.Messages, 1)
	req.NotNil(resp.Cursor)
	req.Equal(next, *resp.Cursor)
}
