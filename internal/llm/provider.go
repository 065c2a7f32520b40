package llm

import "context"

// Provider is the narrow seam between the conversation controller and a
// text-generation backend: one request in, one reply (or error) out.
type Provider interface {
	// Complete sends a single non-streaming generation request.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
