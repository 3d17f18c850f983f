package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tempushq/timesheet_backend/internal/middleware"
	"github.com/tempushq/timesheet_backend/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// realtimeHandler upgrades observers onto the broadcast hub.
type realtimeHandler struct {
	hub *realtime.Hub
}

func newRealtimeHandler(hub *realtime.Hub) *realtimeHandler {
	return &realtimeHandler{hub: hub}
}

// serveWS registers the connection and drains inbound frames until the peer
// goes away. Observers only receive; inbound payloads are discarded.
func (h *realtimeHandler) serveWS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	h.hub.Register(conn)
	go func() {
		defer h.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
