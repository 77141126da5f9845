package model

import "time"

// Attachment is the display metadata of a stored blob. The blob itself
// lives on the filesystem under Key, which is generated and never
// derived from the user-supplied name.
type Attachment struct {
	Key          string    `db:"key" json:"key"`
	OriginalName string    `db:"original_name" json:"original_name"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
