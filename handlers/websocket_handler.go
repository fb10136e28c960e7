package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/house7784/golf-trip-app/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs godoc
// @Summary Subscribe to an event's live update stream
// @Description Upgrades to a websocket joined to the event's room. Clients
// @Description receive standings, pairing, leaderboard and announcement
// @Description push messages; the channel is push-only.
// @Tags live
// @Param eventID path int true "Event ID"
// @Param token query string false "JWT (for clients that cannot set headers)"
// @Security BearerAuth
// @Router /ws/events/{eventID} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "event_id", eventID, "error", err)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: fmt.Sprintf("event:%d", eventID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
