package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"chat-relay/domain"
	"chat-relay/sink"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const pingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement belongs to the gateway in front of this service.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connect upgrades to a websocket and streams RoomUpdateNotice frames to
// the user until they disconnect. The connection sink is registered in the
// presence registry for the lifetime of the socket; deferred detach keeps
// the registry free of dead connections.
func (h *Handler) Connect(c echo.Context) error {
	room, err := roomParam(c)
	if err != nil {
		return err
	}
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	user := domain.UserID(userID)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	connection := sink.NewConnectionSink(h.connectionBufferSize)
	h.chatService.JoinRoom(user, room)
	h.chatService.Connect(user, connection)
	defer h.chatService.Disconnect(user)

	// Reader goroutine: the client sends nothing meaningful, but reading
	// is how we learn about closes and answer control frames.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-closed:
			h.log.Warn(fmt.Sprintf("Client %d disconnected from room %d", user, room))
			return nil
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return nil
			}
		case notice := <-connection.Notices:
			if err := conn.WriteJSON(notice); err != nil {
				h.log.Error("Failed to push notice to websocket",
					"user_id", user,
					"room_id", room,
					"error", err)
				return nil
			}
		}
	}
}
