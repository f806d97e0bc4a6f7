package gateway

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// Client wraps one websocket connection so frames are written by a single
// goroutine at a time and tests can intercept them.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
	hook func(models.Frame)
}

func NewClient(conn *websocket.Conn) *Client { return &Client{conn: conn} }

// SetSendHook replaces the default WebSocket sender (used in tests).
func (c *Client) SetSendHook(fn func(models.Frame)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

func (c *Client) Send(frame models.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		c.hook(frame)
		return nil
	}
	if c.conn == nil {
		return nil
	}
	return c.conn.WriteJSON(frame)
}

// CloseWithCode performs a best-effort close handshake with the given code.
func (c *Client) CloseWithCode(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = c.conn.Close()
}
