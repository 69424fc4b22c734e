// Package client owns the connection to the chat server: dialing,
// lifecycle state, delivering inbound frames and sending outbound
// commands.
package client

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"roomchat/pkg/protocol"
)

// Client manages a single connection to the chat server. A Client is
// good for one connection; once closed it stays closed, and there is
// no automatic reconnection.
type Client struct {
	id       string
	url      string
	dial     DialFunc
	notifier Notifier

	mu     sync.RWMutex
	conn   Conn
	status Status

	frames   chan string
	done     chan struct{}
	doneOnce sync.Once
	discOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Client for the given WebSocket URL using the default
// (gorilla/websocket) dialer and log-based notifications.
func New(serverURL string) *Client {
	return NewWithDialer(serverURL, DialGorilla)
}

// NewWithDialer creates a Client with an explicit dialer.
func NewWithDialer(serverURL string, dial DialFunc) *Client {
	return &Client{
		id:       uuid.NewString(),
		url:      serverURL,
		dial:     dial,
		notifier: LogNotifier{},
		status:   StatusConnecting,
		frames:   make(chan string, 16),
		done:     make(chan struct{}),
	}
}

// SetNotifier replaces the connection health notifier. Must be called
// before Connect.
func (c *Client) SetNotifier(n Notifier) {
	c.notifier = n
}

// ID returns the client's connection id, used for log correlation.
func (c *Client) ID() string {
	return c.id
}

// Connect establishes the WebSocket connection and starts the receive
// loop. A Client cannot be reopened after it has closed.
func (c *Client) Connect() error {
	c.mu.RLock()
	status := c.status
	c.mu.RUnlock()
	if status != StatusConnecting {
		return fmt.Errorf("client is %s, cannot connect", status)
	}

	conn, err := c.dial(c.url)
	if err != nil {
		c.mu.Lock()
		c.status = StatusClosed
		c.mu.Unlock()
		c.notifier.ConnectionError(err)
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.status = StatusOpen
	c.mu.Unlock()

	c.notifier.Connected()
	log.Printf("[%s] connected to %s", c.id, c.url)

	c.wg.Add(1)
	go c.receiveFrames()

	return nil
}

// Disconnect closes the connection and waits for the receive loop to
// stop. Safe to call more than once.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.status = StatusClosed
	c.mu.Unlock()

	c.doneOnce.Do(func() {
		close(c.done)
	})
	if conn != nil {
		conn.Close()
	}
	c.wg.Wait()

	c.discOnce.Do(c.notifier.Disconnected)
}

// Status returns the current lifecycle phase. Transport errors are
// indistinguishable from a close; both end in StatusClosed.
func (c *Client) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// IsConnected returns whether the connection is open.
func (c *Client) IsConnected() bool {
	return c.Status() == StatusOpen
}

// Send encodes and sends a command. Fire-and-forget: there is no
// acknowledgment and no timeout. Fails once the connection is closed.
func (c *Client) Send(cmd protocol.Command) error {
	c.mu.RLock()
	conn := c.conn
	status := c.status
	c.mu.RUnlock()

	if conn == nil || status != StatusOpen {
		return fmt.Errorf("not connected to server")
	}

	if err := conn.WriteFrame(cmd.Encode()); err != nil {
		return fmt.Errorf("failed to send %s command: %w", cmd.Kind, err)
	}

	return nil
}

// Frames returns the channel of inbound frames, in receipt order. The
// channel is closed when the receive loop stops.
func (c *Client) Frames() <-chan string {
	return c.frames
}

// receiveFrames reads inbound frames until the connection closes. The
// frame order on the channel is the receipt order on the wire.
func (c *Client) receiveFrames() {
	defer c.wg.Done()
	defer close(c.frames)

	for {
		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn == nil {
			return
		}

		frame, err := conn.ReadFrame()
		if err != nil {
			select {
			case <-c.done:
				// Deliberate disconnect; Disconnect notifies.
			default:
				log.Printf("[%s] connection lost: %v", c.id, err)
				c.mu.Lock()
				c.conn = nil
				c.status = StatusClosed
				c.mu.Unlock()
				if isAbnormalClose(err) {
					c.notifier.ConnectionError(err)
				} else {
					c.discOnce.Do(c.notifier.Disconnected)
				}
			}
			return
		}

		select {
		case c.frames <- frame:
		case <-c.done:
			return
		}
	}
}
