// Package realtime maintains the websocket connection to the CloudSync
// backend: at most one live connection per authenticated session, opened
// when the session becomes authenticated and torn down when it ends.
// Connection trouble is logged, never surfaced as a user-facing error, and
// never touches the session.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/cloudsync/internal/client/api"
	"github.com/dmitrijs2005/cloudsync/internal/client/session"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// Client-to-server event names.
const (
	EventJoin     = "join"
	EventLeave    = "leave"
	EventChatSend = "chat.send"
)

// Server-to-client event names.
const (
	EventChatMessage  = "chat.message"
	EventNotification = "notification"
)

// Frame is the JSON envelope both directions use.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler receives server-pushed frames.
type Handler func(event string, data json.RawMessage)

// Channel is the realtime connection manager.
type Channel struct {
	url    string
	tokens api.TokenSource
	log    logging.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	cancel    context.CancelFunc
	handlers  map[int]Handler
	nextSubID int

	// writeMu serializes writers; gorilla allows one concurrent writer.
	writeMu sync.Mutex
}

// New returns an unconnected Channel for the websocket endpoint at url
// (e.g. "ws://localhost:8080/ws").
func New(url string, tokens api.TokenSource, log logging.Logger) *Channel {
	return &Channel{url: url, tokens: tokens, log: log, handlers: make(map[int]Handler)}
}

// OnEvent registers a handler for server-pushed frames and returns its
// unsubscribe function. Handlers run on the read goroutine and must not
// block.
func (c *Channel) OnEvent(fn Handler) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.handlers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.handlers, id)
		c.mu.Unlock()
	}
}

// Bind ties the channel lifecycle to the session: the connection opens on
// Authenticated and closes on Anonymous. If the session is already
// authenticated the connection opens immediately.
func (c *Channel) Bind(ctx context.Context, sess *session.Manager) {
	sess.Subscribe(func(s session.State) {
		switch s {
		case session.StateAuthenticated:
			c.Start(ctx)
		case session.StateAnonymous:
			c.Stop()
		}
	})
	if sess.IsAuthenticated() {
		c.Start(ctx)
	}
}

// Start opens the connection loop. Calling Start on a running channel is a
// no-op, preserving the one-connection-per-session invariant.
func (c *Channel) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go c.run(runCtx)
}

// Stop tears the connection down and stops reconnecting. Idempotent.
func (c *Channel) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	conn := c.conn
	c.cancel = nil
	c.conn = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close()
	}
}

// IsConnected reports whether a live connection currently exists.
func (c *Channel) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// run dials with capped backoff and pumps incoming frames until ctx ends.
// A dropped connection re-enters the dial loop.
func (c *Channel) run(ctx context.Context) {
	for ctx.Err() == nil {
		backoff := retry.WithCappedDuration(30*time.Second, retry.NewFibonacci(time.Second))

		var conn *websocket.Conn
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			token := c.tokens.Token()
			if token == "" {
				// Session ended while we were backing off.
				return fmt.Errorf("no token")
			}
			dialed, _, err := websocket.DefaultDialer.DialContext(ctx, c.url+"?token="+token, nil)
			if err != nil {
				c.log.Debug(ctx, "websocket dial failed, will retry", "error", err)
				return retry.RetryableError(err)
			}
			conn = dialed
			return nil
		})
		if err != nil {
			return
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.log.Info(ctx, "websocket connected")

		c.readLoop(ctx, conn)

		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()
		c.log.Info(ctx, "websocket disconnected")
	}
}

// readLoop dispatches frames until the connection drops.
func (c *Channel) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() == nil {
				c.log.Debug(ctx, "websocket read failed", "error", err)
			}
			return
		}

		c.mu.Lock()
		handlers := make([]Handler, 0, len(c.handlers))
		for _, fn := range c.handlers {
			handlers = append(handlers, fn)
		}
		c.mu.Unlock()

		for _, fn := range handlers {
			fn(frame.Event, frame.Data)
		}
	}
}

// send writes one frame. A no-op when the connection is not established:
// frames are never queued or retried silently.
func (c *Channel) send(event string, data any) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		c.log.Warn(context.Background(), "marshalling frame failed", "event", event, "error", err)
		return
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteJSON(Frame{Event: event, Data: payload}); err != nil {
		c.log.Debug(context.Background(), "websocket write failed", "event", event, "error", err)
	}
}

type groupRef struct {
	GroupID string `json:"groupId"`
}

type chatSend struct {
	GroupID string `json:"groupId"`
	Content string `json:"content"`
}

// JoinGroup subscribes to a group's live events.
func (c *Channel) JoinGroup(groupID string) {
	c.send(EventJoin, groupRef{GroupID: groupID})
}

// LeaveGroup unsubscribes from a group's live events.
func (c *Channel) LeaveGroup(groupID string) {
	c.send(EventLeave, groupRef{GroupID: groupID})
}

// SendMessage publishes a chat message to a joined group.
func (c *Channel) SendMessage(groupID, content string) {
	c.send(EventChatSend, chatSend{GroupID: groupID, Content: content})
}
