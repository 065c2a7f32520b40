package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dehaleesankr/folio/internal/conversation"
)

// handleAskAssistant continues the shared assistant session.
func (s *Server) handleAskAssistant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	if _, opened := s.assistant.Mode(); !opened {
		if err := s.assistant.Open(conversation.ModeAssistant); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("opening assistant: %v", err)), nil
		}
	}

	reply, err := s.assistant.Submit(ctx, question)
	if errors.Is(err, conversation.ErrBusy) {
		return mcp.NewToolResultError("the assistant is still answering the previous question"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("asking assistant: %v", err)), nil
	}
	if reply.Discarded {
		return mcp.NewToolResultError("the conversation was reset before the reply arrived"), nil
	}

	return mcp.NewToolResultText(reply.Text), nil
}

// handleResetConversation starts a new assistant session.
func (s *Server) handleResetConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.assistant.Open(conversation.ModeAssistant); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resetting conversation: %v", err)), nil
	}
	return mcp.NewToolResultText("Conversation reset."), nil
}

// handleDraftContactMessage runs a one-shot draft session.
func (s *Server) handleDraftContactMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reason, err := request.RequireString("reason")
	if err != nil || strings.TrimSpace(reason) == "" {
		return mcp.NewToolResultError("missing required parameter: reason"), nil
	}

	presenter := conversation.NewHeadlessPresenter()
	controller := s.newController(presenter)
	defer controller.Shutdown()

	if err := controller.Open(conversation.ModeDraftHelper); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening draft helper: %v", err)), nil
	}
	if _, err := controller.Submit(ctx, reason); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("drafting message: %v", err)), nil
	}

	return mcp.NewToolResultText(presenter.ContactMessage()), nil
}
