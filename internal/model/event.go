package model

import "encoding/json"

const (
	SendEvent    = "send"
	ReceiveEvent = "receive"
	ErrorEvent   = "error"
)

type SocketFrame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SendEventPayload struct {
	ReceiverID    string  `json:"receiver_id"`
	Text          string  `json:"text,omitempty"`
	AttachmentKey *string `json:"attachment_key,omitempty"`
}

type ReceiveEventFrame struct {
	Event   string           `json:"event"`
	Payload DecoratedMessage `json:"payload"`
}
