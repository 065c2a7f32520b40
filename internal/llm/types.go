package llm

// Role tags the author of a message part.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// Message is a single role-tagged text part of a request.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries an ordered conversation. Messages with
// RoleSystem are lifted into the provider's system-instruction slot.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse holds the text extracted from a backend reply.
// Content is empty when the reply carried no usable text part.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

// SystemPrompt joins every system message in the request.
func (r CompletionRequest) SystemPrompt() string {
	var out string
	for _, m := range r.Messages {
		if m.Role != RoleSystem {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}
