package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TextMessageKind = "text"
	FileMessageKind = "file"
)

type MessageList []Message

type Message struct {
	ID             uuid.UUID `db:"id" json:"id"`
	SenderID       uuid.UUID `db:"sender_id" json:"sender_id"`
	ReceiverID     uuid.UUID `db:"receiver_id" json:"receiver_id"`
	Kind           string    `db:"kind" json:"kind"`
	Text           string    `db:"text" json:"text"`
	AttachmentKey  *string   `db:"attachment_key" json:"attachment_key,omitempty"`
	AttachmentName *string   `db:"attachment_name" json:"attachment_name,omitempty"`
	SentAt         time.Time `db:"sent_at" json:"sent_at"`
}

type DecoratedMessageList []DecoratedMessage

// DecoratedMessage is a stored message enriched with the display fields
// of both participants. Decoration is read-side only, the stored row
// never changes.
type DecoratedMessage struct {
	Message

	Sender   UserInfo `json:"sender"`
	Receiver UserInfo `json:"receiver"`
}
