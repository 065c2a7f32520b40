package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askAssistantTool defines the ask_assistant MCP tool.
var askAssistantTool = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Ask the portfolio's AI assistant about the owner's skills, projects or contact details. Earlier questions in the session are remembered until reset_conversation is called."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Question for the assistant"),
	),
)

// resetConversationTool defines the reset_conversation MCP tool.
var resetConversationTool = mcp.NewTool("reset_conversation",
	mcp.WithDescription("Forget the assistant conversation and start a fresh one."),
)

// draftContactMessageTool defines the draft_contact_message MCP tool.
var draftContactMessageTool = mcp.NewTool("draft_contact_message",
	mcp.WithDescription("Draft a short contact message to the portfolio owner for the given reason."),
	mcp.WithString("reason",
		mcp.Required(),
		mcp.Description(`Why you are getting in touch, e.g. "Job offer"`),
	),
)
