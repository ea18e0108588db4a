package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/realtime"
)

// Client is one live websocket connection. Outgoing events go through a
// buffered send channel drained by a single writer goroutine, which gives
// the per-connection FIFO ordering the relay depends on.
type Client struct {
	id         string
	authUserID string

	conn *websocket.Conn
	send chan realtime.Envelope
	hub  *realtime.Hub

	pingInterval  time.Duration
	readDeadline  time.Duration
	writeDeadline time.Duration

	log *logging.Logger
}

// ID implements realtime.Connection
func (c *Client) ID() string {
	return c.id
}

// Send implements realtime.Connection. Non-blocking: when the buffer is full
// the event is dropped and false returned; a slow reader must not stall the
// relay.
func (c *Client) Send(event string, payload interface{}) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Warn("failed to marshal outgoing event",
			zap.String("event", event),
			zap.Error(err),
		)
		return false
	}

	select {
	case c.send <- realtime.Envelope{Event: event, Data: data}:
		return true
	default:
		return false
	}
}

// readPump reads client events until the connection drops, then drives
// registry cleanup through the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.HandleClose(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.readDeadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.readDeadline))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read error",
					zap.String("conn_id", c.id),
					zap.Error(err),
				)
			}
			return
		}

		var env realtime.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Warn("dropping unparseable frame",
				zap.String("conn_id", c.id),
				zap.Error(err),
			)
			continue
		}

		c.hub.HandleEvent(c, c.authUserID, env)
	}
}

// writePump drains the send channel and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case env, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeDeadline))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(env); err != nil {
				c.log.Debug("websocket write error",
					zap.String("conn_id", c.id),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
