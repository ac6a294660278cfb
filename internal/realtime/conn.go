// Package realtime is the WebSocket push-channel client. The server pushes
// one JSON frame per change made by another user; frames are decoded into
// the tasksync event union and delivered on a channel the owning view
// drains from its own event loop.
//
// A Conn is an explicit, injected dependency with a connect/disconnect
// lifecycle tied to the view that owns it. There is no process-wide shared
// socket.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"portal-cli/internal/tasksync"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	// Server pings every 30s; allow two missed intervals.
	readTimeout = 75 * time.Second

	eventBuffer = 32
)

type Conn struct {
	ws *websocket.Conn

	writeMu sync.Mutex

	events chan tasksync.Event
	done   chan struct{}

	closeOnce sync.Once

	errMu   sync.Mutex
	lastErr error
}

// Dial connects to the portal's push endpoint and starts the read loop.
func Dial(ctx context.Context, rawURL, token string) (*Conn, error) {
	hdr := http.Header{}
	if token != "" {
		hdr.Set("Authorization", "Bearer "+token)
	}
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, rawURL, hdr)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		ws:     ws,
		events: make(chan tasksync.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})
	go c.readLoop()
	return c, nil
}

// Events delivers decoded push events. The channel closes when the
// connection dies or Close is called; Err reports why.
func (c *Conn) Events() <-chan tasksync.Event { return c.events }

// Subscribe asks the server to push events for one task.
func (c *Conn) Subscribe(taskID string) error {
	return c.writeControl("subscribe", taskID)
}

func (c *Conn) Unsubscribe(taskID string) error {
	return c.writeControl("unsubscribe", taskID)
}

func (c *Conn) writeControl(typ, taskID string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(map[string]string{"type": typ, "taskId": taskID})
}

func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.writeMu.Lock()
		_ = c.ws.SetWriteDeadline(time.Now().Add(time.Second))
		_ = c.ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.writeMu.Unlock()
		err = c.ws.Close()
	})
	return err
}

// Err returns the read-loop error after Events closes; nil for a clean close.
func (c *Conn) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.lastErr
}

func (c *Conn) readLoop() {
	defer close(c.events)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Closed on purpose; not an error.
			default:
				c.errMu.Lock()
				c.lastErr = err
				c.errMu.Unlock()
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))

		ev, ok := decodeEvent(data)
		if !ok {
			continue
		}
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}
