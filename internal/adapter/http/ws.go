package http

import (
	"log"
	"net/http"

	"po-financing-backend/internal/notify"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var websocketUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct{ hub *notify.Hub }

func NewWSHandler(hub *notify.Hub) *WSHandler { return &WSHandler{hub: hub} }

// Subscribe upgrades the connection and streams hub events to it until the
// client goes away or the hub drops the subscriber. Push-only: client frames
// are read solely to detect disconnect.
func (h *WSHandler) Subscribe(c echo.Context) error {
	conn, err := websocketUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return nil
	}

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	go func() {
		for ev := range sub.Events() {
			if err := conn.WriteJSON(ev); err != nil {
				break
			}
		}
		// events channel closed or write failed; wake up the read loop
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
