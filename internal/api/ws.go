package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/hyperdash/monitor/internal/domain/models"
	"github.com/hyperdash/monitor/internal/logger"
	"github.com/hyperdash/monitor/internal/metrics"
)

// wsEvent is pushed to connected dashboard clients when a new snapshot
// is stored. Clients re-fetch the history over the JSON API on receipt.
type wsEvent struct {
	Type            string  `json:"type"`
	TimestampMillis int64   `json:"timestampMillis"`
	GlobalRatio     float64 `json:"globalRatio"`
	Assets          int     `json:"assets"`
}

// WSHub manages WebSocket connections and notifies all connected clients
// whenever a new snapshot lands.
type WSHub struct {
	clients      map[*websocket.Conn]bool
	broadcast    chan []byte
	register     chan *websocket.Conn
	unregister   chan *websocket.Conn
	mu           sync.RWMutex
	pingInterval time.Duration
}

// NewWSHub creates a WebSocket hub. Run must be started for the hub to
// deliver anything.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:      make(map[*websocket.Conn]bool),
		broadcast:    make(chan []byte, 256),
		register:     make(chan *websocket.Conn, 16),
		unregister:   make(chan *websocket.Conn, 16),
		pingInterval: 30 * time.Second,
	}
}

// Run is the hub's event loop. It returns when ctx is canceled, closing
// every remaining connection.
func (h *WSHub) Run(ctx context.Context) {
	log := logger.C("ws")

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			metrics.WebSocketClients.Set(0)
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(total))
			log.Debug().Int("total", total).Msg("ws client connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(total))

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			metrics.WebSocketClients.Set(float64(len(h.clients)))
			h.mu.Unlock()
		}
	}
}

// NotifySnapshot queues a snapshot event for all connected clients. The
// event is dropped when the buffer is full so snapshot runs never block
// on slow consumers.
func (h *WSHub) NotifySnapshot(snap models.Snapshot) {
	data, err := json.Marshal(wsEvent{
		Type:            "snapshot",
		TimestampMillis: snap.TimestampMillis,
		GlobalRatio:     snap.GlobalRatio,
		Assets:          len(snap.Assets),
	})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// The dashboard is public read-only; any origin may subscribe.
		return true
	},
}

// Handle upgrades a request to a WebSocket connection at GET /ws.
func (h *WSHub) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log := logger.C("ws")
		log.Error().Err(err).Msg("ws upgrade failed")
		return
	}

	h.register <- conn

	// Read pump: keep connection alive and detect disconnects.
	go func() {
		defer func() { h.unregister <- conn }()
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	// Ping ticker to keep the connection alive through proxies.
	go func() {
		ticker := time.NewTicker(h.pingInterval)
		defer ticker.Stop()
		for range ticker.C {
			h.mu.RLock()
			_, ok := h.clients[conn]
			h.mu.RUnlock()
			if !ok {
				return
			}
			// Pings go out as control frames: WriteControl may run
			// concurrently with the hub loop's data writes, WriteMessage
			// may not.
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()
}
