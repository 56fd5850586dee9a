package api

import (
	"log"

	"github.com/example/calc-service/modules/feed"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// handleFeedSocket handles WebSocket connections at /ws/feed. The feed is
// one-way: the server pushes frames, inbound messages are drained only to
// detect the close.
func (m *APIModule) handleFeedSocket(c *websocket.Conn) {
	client := &feed.Client{
		ID:   uuid.New().String(),
		Conn: c,
	}

	m.hub.Register(client)
	defer func() {
		m.hub.Unregister(client)
		log.Printf("[api] Feed client disconnected: %s", client.ID)
	}()

	log.Printf("[api] Feed client connected: %s", client.ID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[api] Feed client %s closed connection", client.ID)
			} else {
				log.Printf("[api] Feed read error from %s: %v", client.ID, err)
			}
			return
		}
	}
}
