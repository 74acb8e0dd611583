package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
	"github.com/lox/videopoker/solver"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 16),
		server: server,
		logger: server.logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, dropping message", "type", msg.Type)
		return fmt.Errorf("send buffer full")
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("Invalid message", "error", err)
			c.sendError("", ErrCodeInvalidMessage, "message is not valid JSON")
			continue
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "request", msg.RequestID)

	switch msg.Type {
	case MessageTypeSolve:
		var data SolveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, ErrCodeInvalidMessage, "failed to parse solve data")
			return
		}
		c.handleSolve(msg.RequestID, data)

	default:
		c.sendError(msg.RequestID, ErrCodeInvalidMessage, fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (c *Connection) handleSolve(requestID string, data SolveData) {
	hand, err := poker.ParseHand(data.Hand)
	if err != nil {
		c.sendError(requestID, errorCode(err), err.Error())
		return
	}

	name := data.PayTable
	if name == "" {
		name = c.server.config.DefaultPayTable
	}
	table, err := c.server.tables.Lookup(name)
	if err != nil {
		c.sendError(requestID, errorCode(err), err.Error())
		return
	}

	if data.Hold != "" {
		pattern, err := solver.ParseHoldPattern(data.Hold, hand)
		if err != nil {
			c.sendError(requestID, errorCode(err), err.Error())
			return
		}
		c.reply(requestID, MessageTypeHoldResult, func() (any, error) {
			r, err := c.server.solver.Evaluator().Evaluate(hand, pattern, table)
			if err != nil {
				return nil, err
			}
			return HoldResultData{Hand: hand.String(), PayTable: table.Name, Result: newHoldData(r)}, nil
		})
		return
	}

	c.reply(requestID, MessageTypeResult, func() (any, error) {
		play, err := c.server.solver.Solve(hand, table)
		if err != nil {
			return nil, err
		}
		return newResultData(play), nil
	})
}

// reply runs work and sends its result, or a timeout error if the client's
// deadline passes first. The work is left to finish in the background.
func (c *Connection) reply(requestID string, msgType MessageType, work func() (any, error)) {
	type outcome struct {
		data any
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		data, err := work()
		done <- outcome{data, err}
	}()

	timer := c.server.clock.NewTimer(c.server.config.SolveTimeout, "solve")
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			c.sendError(requestID, errorCode(out.err), out.err.Error())
			return
		}
		msg, err := NewMessage(msgType, requestID, out.data, c.server.clock.Now())
		if err != nil {
			c.sendError(requestID, ErrCodeInternal, err.Error())
			return
		}
		_ = c.SendMessage(msg)

	case <-timer.C:
		c.logger.Warn("Solve timed out", "request", requestID, "timeout", c.server.config.SolveTimeout)
		c.sendError(requestID, ErrCodeTimeout, "solve did not finish in time")

	case <-c.ctx.Done():
	}
}

func (c *Connection) sendError(requestID, code, message string) {
	msg, err := NewMessage(MessageTypeError, requestID, ErrorData{Code: code, Message: message}, c.server.clock.Now())
	if err != nil {
		c.logger.Error("Failed to build error message", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, poker.ErrInvalidHand):
		return ErrCodeInvalidHand
	case errors.Is(err, solver.ErrInvalidHoldPattern):
		return ErrCodeInvalidHold
	case errors.Is(err, paytable.ErrInvalidPayTable):
		return ErrCodeInvalidPayTable
	case errors.Is(err, paytable.ErrUnknownPayTable):
		return ErrCodeUnknownPayTable
	default:
		return ErrCodeInternal
	}
}
