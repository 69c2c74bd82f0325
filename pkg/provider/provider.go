// Package provider connects to an external landmark-detector service
// over a websocket and delivers its per-frame eye landmarks to the
// pipeline. The provider controls the cadence; the client just reads.
package provider

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/irisline/gazekit/internal/log"
	"github.com/irisline/gazekit/pkg/gaze"
)

const (
	handshakeTimeout = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
)

// ErrUnavailable is returned when the landmark provider cannot be
// reached. This is fatal to starting a session; no partial state is
// created.
var ErrUnavailable = errors.New("provider: landmark service unavailable")

// FrameHandler receives each landmark frame in delivery order.
type FrameHandler func(gaze.LandmarkFrame)

// Client is a websocket client for a push-style landmark detector.
type Client struct {
	url     string
	handler FrameHandler

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// NewClient creates a client for the given websocket URL.
func NewClient(url string, handler FrameHandler) *Client {
	return &Client{url: url, handler: handler}
}

// Connect dials the provider. A failure here is an acquisition
// failure: the caller must not start a session.
func (c *Client) Connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.closed = false
	c.mu.Unlock()

	log.Info("landmark provider connected", "url", c.url)
	return nil
}

// Run reads frames until the connection drops or Close is called.
// Frames are handed to the handler synchronously so pipeline order is
// exactly delivery order.
func (c *Client) Run() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrUnavailable
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.pingLoop(conn)

	for {
		var frame gaze.LandmarkFrame
		if err := conn.ReadJSON(&frame); err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if closed {
				return nil
			}
			return fmt.Errorf("provider: read: %w", err)
		}
		c.handler(frame)
	}
}

// pingLoop keeps the connection alive; it exits when writes fail.
func (c *Client) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}

// Close shuts the connection down. Run returns nil afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
