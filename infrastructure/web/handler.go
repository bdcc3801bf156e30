// Package web exposes the core operations over HTTP and pushes room
// update notices over websockets. The wire shapes here are a thin edge:
// all semantics live in the service, pipeline and tracker.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"chat-relay/domain"
	chaterrors "chat-relay/errors"
	"chat-relay/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type Handler struct {
	chatService          services.IChatService
	connectionBufferSize int
	log                  *slog.Logger
}

func NewHandler(chatService services.IChatService, connectionBufferSize int, log *slog.Logger) *Handler {
	return &Handler{chatService: chatService, connectionBufferSize: connectionBufferSize, log: log}
}

func (h *Handler) Register(e *echo.Echo) {
	e.POST("/rooms/:room/join", h.JoinRoom)
	e.POST("/rooms/:room/leave", h.LeaveRoom)
	e.POST("/rooms/:room/messages", h.SubmitMessage)
	e.GET("/rooms/:room/messages", h.GetMessages)
	e.POST("/rooms/:room/read-all", h.MarkAllRead)
	e.POST("/rooms/:room/unread/increment", h.IncrementUnread)
	e.GET("/messages/:id", h.MessageStatus)
	e.POST("/messages/:id/read", h.MarkRead)
	e.GET("/rooms/:room/connect", h.Connect)
}

type memberRequest struct {
	UserID int64 `json:"userId"`
}

type submitRequest struct {
	SenderID int64  `json:"senderId"`
	Content  string `json:"content"`
}

type markAllRequest struct {
	UserID    int64  `json:"userId"`
	RequestID string `json:"requestId"`
}

type messageResponse struct {
	MessageID string    `json:"messageId"`
	RoomID    int       `json:"roomId"`
	SenderID  int64     `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

func (h *Handler) JoinRoom(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.chatService.JoinRoom(domain.UserID(req.UserID), room)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) LeaveRoom(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.chatService.LeaveRoom(domain.UserID(req.UserID), room)
	return c.NoContent(http.StatusNoContent)
}

// SubmitMessage accepts a message and answers immediately with the created
// message in SENDING: delivery continues asynchronously, progress is
// observable through GET /messages/:id and the websocket notices.
func (h *Handler) SubmitMessage(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	msg, err := h.chatService.Submit(c.Request().Context(), domain.SubmitMessageCommand{
		Room:    int(room),
		Sender:  req.SenderID,
		Content: req.Content,
	})
	if err != nil {
		return chaterrors.MapToHTTPError(err)
	}
	return c.JSON(http.StatusAccepted, toMessageResponse(msg))
}

func (h *Handler) GetMessages(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	var cursor *string
	if raw := c.QueryParam("cursor"); raw != "" {
		cursor = &raw
	}
	messages, next, err := h.chatService.GetMessages(domain.GetMessageCommand{Room: int(room), Cursor: cursor})
	if err != nil {
		return chaterrors.MapToHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"messages": lo.Map(messages, func(item domain.Message, _ int) messageResponse {
			return toMessageResponse(item)
		}),
		"cursor": next,
	})
}

func (h *Handler) MessageStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}
	msg, err := h.chatService.MessageStatus(id)
	if err != nil {
		return chaterrors.MapToHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (h *Handler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid message id")
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.chatService.MarkMessageAsRead(c.Request().Context(), id, domain.UserID(req.UserID)); err != nil {
		return chaterrors.MapToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead is safe to retry: the requestId makes a replay a successful
// no-op, so clients unsure whether the call landed just send it again.
func (h *Handler) MarkAllRead(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	var req markAllRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err = h.chatService.MarkAllMessagesAsRead(c.Request().Context(), domain.MarkAllReadCommand{
		Room:      int(room),
		User:      req.UserID,
		RequestID: req.RequestID,
	})
	if err != nil {
		return chaterrors.MapToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) IncrementUnread(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.chatService.IncrementUnreadCount(c.Request().Context(), room, domain.UserID(req.UserID)); err != nil {
		return chaterrors.MapToHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func roomParam(c echo.Context) (domain.RoomID, error) {
	var room int
	if err := echo.PathParamsBinder(c).Int("room", &room).BindError(); err != nil || room <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}
	return domain.RoomID(room), nil
}

func toMessageResponse(m domain.Message) messageResponse {
	return messageResponse{
		MessageID: m.ID.String(),
		RoomID:    int(m.Room),
		SenderID:  int64(m.Sender),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Status:    string(m.Status),
	}
}
