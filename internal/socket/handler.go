// Package socket is the realtime ingress and egress. A connection
// authenticates with a short-lived connect token, joins the topic of its
// own user id and exchanges JSON frames over a single websocket.
package socket

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/config"
)

type Handler struct {
	sender    MessageSender
	broker    Broker
	validator TokenValidator
	upgrader  websocket.Upgrader
}

func New(sender MessageSender, broker Broker, validator TokenValidator) *Handler {
	return &Handler{
		sender:    sender,
		broker:    broker,
		validator: validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeWS upgrades the request and runs the connection until it closes.
// The route is mounted outside the session middleware, the connect token
// in the query string is the only credential.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("ServeWS")

	claims, err := h.validator.ValidateConnectToken(r.URL.Query().Get("token"))
	if err != nil {
		logger.Warn(fmt.Sprintf("rejected socket connect: %v", err))
		http.Error(w, "invalid connect token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to upgrade connection: %v", err))
		return
	}

	c := newClient(conn, claims.UserID, logger)

	// Joining is implicit: every connection subscribes to its own topic
	// and nothing else.
	sub, err := h.broker.Subscribe(claims.UserID, c.enqueue)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to subscribe user %s: %v", claims.UserID, err))
		_ = conn.Close()
		return
	}
	defer func() {
		if err := sub.Close(); err != nil {
			logger.Warn(fmt.Sprintf("failed to close subscription for user %s: %v", claims.UserID, err))
		}
	}()

	logger.Info(fmt.Sprintf("user %s connected", claims.UserID))

	go c.writePump()
	c.readPump(r.Context(), h.sender)

	logger.Info(fmt.Sprintf("user %s disconnected", claims.UserID))
}
