package access

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkinChannel = "access:checkins"

// Connection is one dashboard client watching the check-in feed.
type Connection struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans recorded check-ins out to connected dashboard clients. With a
// Redis client it also relays events across server instances through
// Pub/Sub; without one the feed stays instance-local.
type Hub struct {
	connections map[*Connection]bool
	mu          sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	redis  *redis.Client
	pubsub *redis.PubSub

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		redis:       redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, checkinChannel)
	}

	return h
}

// Run starts the hub loop (call in a goroutine).
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.Send)
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	for {
		msg, err := h.pubsub.ReceiveMessage(h.ctx)
		if err != nil {
			if h.ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("Check-in feed subscriber error")
			time.Sleep(time.Second)
			continue
		}
		h.broadcastLocal([]byte(msg.Payload))
	}
}

// Broadcast publishes one entry to every watcher. Slow clients are dropped
// rather than blocking the feed.
func (h *Hub) Broadcast(entry *EntryLog) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode check-in event")
		return
	}

	if h.redis != nil {
		if err := h.redis.Publish(h.ctx, checkinChannel, data).Err(); err != nil {
			log.Error().Err(err).Msg("Failed to publish check-in event")
			h.broadcastLocal(data)
		}
		return
	}

	h.broadcastLocal(data)
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections {
		select {
		case conn.Send <- data:
		default:
			go func(c *Connection) { h.unregister <- c }(conn)
		}
	}
}

func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

// WritePump drains the send channel to the socket (call in a goroutine).
func (c *Connection) WritePump() {
	ticker := time.NewTicker(45 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
