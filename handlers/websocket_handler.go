package handlers

import (
	"log/slog"
	"net/http"

	"github.com/courtside-dev/referee-system/realtime"
	"github.com/courtside-dev/referee-system/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The mobile client has no stable Origin; tighten this when a web
		// client with a fixed domain appears.
		return true
	},
}

type WebSocketHandler struct {
	hub          *realtime.Hub
	tokenService services.TokenService
}

func NewWebSocketHandler(hub *realtime.Hub, tokenService services.TokenService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		tokenService: tokenService,
	}
}

// ServeWs upgrades GET /api/ws?token=... to a websocket and registers the
// connection under the caller's user id. Websocket clients can't set an
// Authorization header from the browser API, hence the query parameter.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		errorResponse(w, r, http.StatusForbidden, "No token provided")
		return
	}

	claims, err := h.tokenService.Verify(token)
	if err != nil {
		errorResponse(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error to the client.
		slog.Error("failed to upgrade websocket connection",
			slog.Int("user_id", claims.UserID),
			slog.Any("error", err))
		return
	}

	client := &realtime.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: claims.UserID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
