package conversation

import "github.com/dehaleesankr/folio/internal/llm"

// Role identifies who wrote a transcript entry.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Entry is one line of the visible chat.
type Entry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is an append-only list of entries for one modal session.
type Transcript struct {
	entries []Entry
}

func (t *Transcript) Append(e Entry) {
	t.entries = append(t.entries, e)
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the transcript.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Messages converts the transcript into provider messages, oldest first.
func (t *Transcript) Messages() []llm.Message {
	msgs := make([]llm.Message, 0, len(t.entries))
	for _, e := range t.entries {
		role := llm.RoleUser
		if e.Role == RoleModel {
			role = llm.RoleModel
		}
		msgs = append(msgs, llm.Message{Role: role, Content: e.Text})
	}
	return msgs
}
