package mcp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/llm"
)

// scriptedProvider returns replies in order and records requests.
type scriptedProvider struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []llm.CompletionRequest
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, req)
	if p.err != nil {
		return nil, p.err
	}
	reply := "ok"
	if len(p.replies) > 0 {
		reply, p.replies = p.replies[0], p.replies[1:]
	}
	return &llm.CompletionResponse{Content: reply}, nil
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return tc.Text
}

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and required properties.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"ask_assistant", askAssistantTool, "ask_assistant"},
		{"reset_conversation", resetConversationTool, "reset_conversation"},
		{"draft_contact_message", draftContactMessageTool, "draft_contact_message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(&scriptedProvider{}, Options{})

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.opts.Profile.Name != "Dehaleesan KR" {
		t.Errorf("default profile not applied: %q", srv.opts.Profile.Name)
	}
	if _, opened := srv.assistant.Mode(); opened {
		t.Error("assistant should not be opened before the first question")
	}
}

func TestHandleAskAssistantKeepsHistory(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"He works on IoT.", "City Bus Detection."}}
	srv := NewServer(provider, Options{})
	ctx := context.Background()

	result, err := srv.handleAskAssistant(ctx, call(map[string]any{"question": "What does he do?"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if got := resultText(t, result); got != "He works on IoT." {
		t.Errorf("reply = %q", got)
	}

	result, _ = srv.handleAskAssistant(ctx, call(map[string]any{"question": "Which project?"}))
	if got := resultText(t, result); got != "City Bus Detection." {
		t.Errorf("reply = %q", got)
	}

	// system + user + model + user
	if n := len(provider.calls[1].Messages); n != 4 {
		t.Errorf("second request carried %d messages, want 4", n)
	}
	if got := len(srv.assistant.Transcript()); got != 4 {
		t.Errorf("transcript length = %d, want 4", got)
	}
}

func TestHandleAskAssistantMissingQuestion(t *testing.T) {
	srv := NewServer(&scriptedProvider{}, Options{})

	for _, args := range []map[string]any{{}, {"question": "   "}} {
		result, err := srv.handleAskAssistant(context.Background(), call(args))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Errorf("expected error for args %v", args)
		}
	}
}

func TestHandleAskAssistantTransportError(t *testing.T) {
	srv := NewServer(&scriptedProvider{err: errors.New("dial tcp: timeout")}, Options{})

	result, err := srv.handleAskAssistant(context.Background(), call(map[string]any{"question": "hi"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatal("backend failures are reply text, not tool errors")
	}
	if got := resultText(t, result); got != "Error: dial tcp: timeout" {
		t.Errorf("reply = %q", got)
	}
}

func TestHandleResetConversation(t *testing.T) {
	srv := NewServer(&scriptedProvider{}, Options{})
	ctx := context.Background()

	srv.handleAskAssistant(ctx, call(map[string]any{"question": "hi"}))
	if len(srv.assistant.Transcript()) != 2 {
		t.Fatal("expected a two-entry transcript before reset")
	}

	result, err := srv.handleResetConversation(ctx, call(nil))
	if err != nil || result.IsError {
		t.Fatalf("reset failed: %v %v", err, result)
	}
	if n := len(srv.assistant.Transcript()); n != 0 {
		t.Errorf("transcript length after reset = %d, want 0", n)
	}
}

func TestHandleDraftContactMessage(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"Thanks for reaching out about Job offer! [Name]"}}
	srv := NewServer(provider, Options{})

	result, err := srv.handleDraftContactMessage(context.Background(), call(map[string]any{"reason": "Job offer"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if got := resultText(t, result); got != "Thanks for reaching out about Job offer!" {
		t.Errorf("draft = %q", got)
	}
	if got := provider.calls[0].Messages[0].Content; got != `Draft a short contact message to Dehaleesan for: "Job offer". Sign off with [Name].` {
		t.Errorf("prompt = %q", got)
	}
	if n := len(srv.assistant.Transcript()); n != 0 {
		t.Errorf("draft must not touch the assistant transcript, got %d entries", n)
	}
}

func TestHandleDraftContactMessageMissingReason(t *testing.T) {
	srv := NewServer(&scriptedProvider{}, Options{})
	result, err := srv.handleDraftContactMessage(context.Background(), call(map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error for missing reason")
	}
}

type countingRecorder struct{ n int }

func (c *countingRecorder) RecordExchange(context.Context, conversation.Exchange) error {
	c.n++
	return nil
}

func TestRecorderSeesToolExchanges(t *testing.T) {
	rec := &countingRecorder{}
	srv := NewServer(&scriptedProvider{}, Options{Recorder: rec, SessionID: "mcp"})
	ctx := context.Background()

	srv.handleAskAssistant(ctx, call(map[string]any{"question": "hi"}))
	srv.handleDraftContactMessage(ctx, call(map[string]any{"reason": "Hiring"}))

	if rec.n != 2 {
		t.Errorf("recorded %d exchanges, want 2", rec.n)
	}
}
