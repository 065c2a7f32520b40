// Package exchange keeps a write-only log of completed modal submissions.
// Nothing in the modal reads it back; it exists for the owner's review.
package exchange

import (
	"time"

	"github.com/dehaleesankr/folio/internal/conversation"
)

// Record is a single logged exchange.
type Record struct {
	ID         string                `json:"id"`
	SessionID  string                `json:"session_id"`
	Mode       conversation.ModeKind `json:"mode"`
	Prompt     string                `json:"prompt"`
	Reply      string                `json:"reply"`
	DurationMS int64                 `json:"duration_ms"`
	CreatedAt  time.Time             `json:"created_at"`
}

// FromExchange converts a controller exchange into a Record.
func FromExchange(e conversation.Exchange) Record {
	return Record{
		SessionID:  e.SessionID,
		Mode:       e.Mode,
		Prompt:     e.Prompt,
		Reply:      e.Reply,
		DurationMS: e.Duration.Milliseconds(),
		CreatedAt:  e.At,
	}
}
