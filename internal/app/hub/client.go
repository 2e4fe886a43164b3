/*
Package hub contains the core logic for tracking connected clients and fanning
record updates out to them.

This file defines the Client struct, representing one active WebSocket
connection. It manages the session lifecycle and the two per-connection
goroutines: the inbound read loop (ReadPump) and the outbound pump (WritePump).
*/
package hub

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"usersync/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 8192
)

// Client represents one active WebSocket connection.
// Its lifecycle runs Connecting (NewClient registers it with the hub),
// Active (ReadPump feeds the handler), and Closing/Closed (transport failure
// or end-of-stream unregisters it, which drains and stops the write pump).
type Client struct {
	// id is the server-assigned connection identity; never reused.
	id uint64

	// hub is the registry this client belongs to.
	hub *Hub

	// handler interprets the client's inbound frames.
	handler *Handler

	// conn is the underlying WebSocket connection object.
	conn *websocket.Conn

	// out is the client's outbound delivery queue, drained only by WritePump.
	out *outbox

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient wraps an upgraded connection, registers it with the hub, and
// returns the session. The caller must start WritePump in its own goroutine
// and then run ReadPump.
func NewClient(h *Hub, handler *Handler, conn *websocket.Conn) *Client {
	out := newOutbox()
	id := h.register(out)

	clientLogger := logx.Logger().With().
		Uint64("client_id", id).
		Logger()

	return &Client{
		id:      id,
		hub:     h,
		handler: handler,
		conn:    conn,
		out:     out,
		logger:  clientLogger,
	}
}

// ID returns the server-assigned connection identity.
func (c *Client) ID() uint64 {
	return c.id
}

// ReadPump runs the inbound read loop. Every frame is handed to the protocol
// handler; handler failures answer the sender and keep the connection open.
// The loop ends on end-of-stream or transport error, then cleans up.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		frameType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.handler.Handle(c.id, frameType, data)
	}
}

// cleanupOnDisconnect unregisters the client (closing its outbox, which ends
// WritePump) and closes the transport. Safe to run once per connection.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.unregister(c.id)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump drains the client's outbox onto the WebSocket connection in order
// and maintains the ping heartbeat. It terminates when the outbox closes or a
// write fails. Runs in its own goroutine; it is the only writer on the conn.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case <-c.out.Wait():
			if !c.drainOutbox() {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// drainOutbox writes all currently queued frames to the connection.
// Returns false when the pump should terminate: the outbox closed or a write
// failed. On closure a Close frame is sent before giving up the connection.
func (c *Client) drainOutbox() bool {
	for {
		frame, ok, open := c.out.Pop()

		if ok {
			if !c.writeFrame(frame) {
				return false
			}
			continue
		}

		if !open {
			c.writeCloseMessage()
			return false
		}

		return true
	}
}

// writeFrame writes one text frame, enforcing the write deadline.
// Returns false if the pump should terminate.
func (c *Client) writeFrame(frame []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writeCloseMessage sends a WebSocket Close frame after the outbox has closed.
func (c *Client) writeCloseMessage() {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
		c.logger.Debug().Err(err).Msg("Error writing close message")
	}
}

// writePingMessage sends a periodic Ping to maintain the connection heartbeat.
// Returns false if the pump should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
