package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/model"
	"github.com/s21platform/dialog-service/internal/service"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	maxFrameBytes = 64 << 10
	sendQueueSize = 256
)

// client is one authenticated socket connection. The sender identity is
// fixed at connect time from the verified token, frames carry no sender
// field and cannot override it.
type client struct {
	conn   *websocket.Conn
	userID string
	logger logger_lib.LoggerInterface

	send chan any
	done chan struct{}
}

func newClient(conn *websocket.Conn, userID string, logger logger_lib.LoggerInterface) *client {
	return &client{
		conn:   conn,
		userID: userID,
		logger: logger,
		send:   make(chan any, sendQueueSize),
		done:   make(chan struct{}),
	}
}

// enqueue hands a delivered message to the write pump. A connection that
// cannot keep up loses the frame, the message is still durable and comes
// back through history.
func (c *client) enqueue(msg model.DecoratedMessage) {
	frame := model.ReceiveEventFrame{
		Event:   model.ReceiveEvent,
		Payload: msg,
	}

	c.enqueueFrame(frame)
}

func (c *client) enqueueFrame(frame any) {
	select {
	case c.send <- frame:
	case <-c.done:
	default:
		c.logger.Warn(fmt.Sprintf("send queue full for user %s, dropping frame", c.userID))
	}
}

// readPump consumes inbound frames until the connection closes. It runs on
// the handler goroutine, closing done tears down the write pump.
func (c *client) readPump(ctx context.Context, sender MessageSender) {
	defer close(c.done)

	c.conn.SetReadLimit(maxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame model.SocketFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn(fmt.Sprintf("socket read error for user %s: %v", c.userID, err))
			}
			return
		}

		if frame.Event != model.SendEvent {
			c.reportError(fmt.Sprintf("unsupported event: %s", frame.Event))
			continue
		}

		var payload model.SendEventPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			c.reportError("invalid send payload")
			continue
		}

		in := service.SendInput{
			ReceiverID:    payload.ReceiverID,
			Text:          payload.Text,
			AttachmentKey: payload.AttachmentKey,
		}

		if _, err := sender.SendMessage(ctx, c.userID, in); err != nil {
			c.logger.Error(fmt.Sprintf("failed to send message from socket for user %s: %v", c.userID, err))
			c.reportError(err.Error())
		}
	}
}

// writePump owns all writes to the connection, the read pump never writes
// directly.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(frame); err != nil {
				c.logger.Warn(fmt.Sprintf("socket write error for user %s: %v", c.userID, err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *client) reportError(message string) {
	payload, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		return
	}

	c.enqueueFrame(model.SocketFrame{
		Event:   model.ErrorEvent,
		Payload: payload,
	})
}
