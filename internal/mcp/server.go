package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dehaleesankr/folio/internal/clock"
	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/llm"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Options configures the MCP server. Zero values get defaults.
type Options struct {
	Profile   conversation.Profile
	Recorder  conversation.Recorder
	Logger    *zap.Logger
	Timeout   time.Duration
	SessionID string
}

// Server wraps an MCP server that lets an agent talk to the portfolio
// assistant. One assistant session is shared across tool calls.
type Server struct {
	provider  llm.Provider
	opts      Options
	logger    *zap.Logger
	assistant *conversation.Controller
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server backed by provider.
func NewServer(provider llm.Provider, opts Options) *Server {
	if opts.Profile.Name == "" {
		opts.Profile = conversation.DefaultProfile()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Server{
		provider: provider,
		opts:     opts,
		logger:   opts.Logger.Named("mcp"),
	}
	s.assistant = s.newController(conversation.NewHeadlessPresenter())

	s.mcp = server.NewMCPServer(
		"folio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// newController builds a headless controller. Its transitions are never
// observed, so it runs on a manual clock that nobody advances.
func (s *Server) newController(p conversation.Presenter) *conversation.Controller {
	opts := []conversation.Option{
		conversation.WithScheduler(clock.NewManual()),
		conversation.WithProfile(s.opts.Profile),
		conversation.WithLogger(s.logger),
		conversation.WithTimeout(s.opts.Timeout),
	}
	if s.opts.Recorder != nil {
		opts = append(opts, conversation.WithRecorder(s.opts.Recorder, s.opts.SessionID))
	}
	return conversation.New(s.provider, p, opts...)
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askAssistantTool, s.handleAskAssistant)
	s.mcp.AddTool(resetConversationTool, s.handleResetConversation)
	s.mcp.AddTool(draftContactMessageTool, s.handleDraftContactMessage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	defer s.assistant.Shutdown()
	return server.ServeStdio(s.mcp)
}
