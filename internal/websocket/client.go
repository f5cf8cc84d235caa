package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"nexora-chat/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client represents one realtime connection. Only WriteLoop writes data
// frames to Conn; everything else queues through SendMessage.
type Client struct {
	ID   string          // Unique client ID
	Conn *websocket.Conn // WebSocket connection
	Send chan []byte     // Outbound message channel

	pingInterval time.Duration
	alive        atomic.Bool
	done         chan struct{}
	closeOnce    sync.Once
	terminated   atomic.Bool
}

// NewClient creates a new WebSocket client. The connection starts alive.
func NewClient(conn *websocket.Conn, pingInterval time.Duration) *Client {
	c := &Client{
		ID:           uuid.New().String(),
		Conn:         conn,
		Send:         make(chan []byte, 256),
		pingInterval: pingInterval,
		done:         make(chan struct{}),
	}
	c.alive.Store(true)
	return c
}

// MarkAlive records a pong from the peer.
func (c *Client) MarkAlive() {
	c.alive.Store(true)
}

// Terminated reports whether the connection was closed for missing a probe.
func (c *Client) Terminated() bool {
	return c.terminated.Load()
}

// WriteLoop drains the Send queue and runs the liveness probe. Each tick a
// client that has not answered the previous ping is terminated; otherwise
// it is marked suspect and pinged again. The ticker is released on every
// return path.
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Close()
			return
		case <-c.done:
			return
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if !c.alive.Swap(false) {
				c.terminated.Store(true)
				metrics.WSTerminations.Inc()
				c.Close()
				return
			}
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Close tears the connection down. Safe to call more than once and from any
// goroutine; a blocked ReadMessage returns an error afterwards.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.Conn.Close()
	})
}

// SendMessage queues a message for the client (non-blocking). Messages for
// a closed client or a full queue are dropped.
func (c *Client) SendMessage(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Send <- msg:
		return true
	default:
		// Channel full, message dropped
		return false
	}
}
