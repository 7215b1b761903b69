// Package ws provides the real-time catalog change feed. Every successful
// mutation of the catalog is broadcast to all connected clients.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"phone_catalog_server/pkg/colors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		return true
	},
}

// Event is a catalog change message sent to connected clients
type Event struct {
	Type      string      `json:"type"`
	Action    string      `json:"action"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// hub tracks active connections
type hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.RWMutex
}

var feed = &hub{clients: make(map[*websocket.Conn]bool)}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client disconnects
func HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		colors.PrintError("WebSocket upgrade failed: %v", err)
		return
	}

	feed.mutex.Lock()
	feed.clients[conn] = true
	total := len(feed.clients)
	feed.mutex.Unlock()
	colors.PrintInfo("WebSocket client connected (%d active)", total)

	defer func() {
		feed.mutex.Lock()
		delete(feed.clients, conn)
		feed.mutex.Unlock()
		conn.Close()
	}()

	// Drain incoming messages; the feed is one-way
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a catalog change event to every connected client
func Broadcast(action string, data interface{}) {
	message, err := json.Marshal(Event{
		Type:      "catalog",
		Action:    action,
		Timestamp: time.Now().Format(time.RFC3339),
		Data:      data,
	})
	if err != nil {
		colors.PrintError("Failed to encode catalog event: %v", err)
		return
	}

	feed.mutex.Lock()
	defer feed.mutex.Unlock()
	for conn := range feed.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			conn.Close()
			delete(feed.clients, conn)
		}
	}
}
