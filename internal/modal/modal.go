// Package modal exposes the conversation controller to the browser: a
// WebSocket per open page and a one-shot JSON draft endpoint.
package modal

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dehaleesankr/folio/internal/clock"
	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/llm"
	"github.com/dehaleesankr/folio/internal/render"
)

// Options configures a Handler. Zero values get sensible defaults.
type Options struct {
	Profile        conversation.Profile
	Renderer       *render.Renderer
	Recorder       conversation.Recorder
	Logger         *zap.Logger
	Timeout        time.Duration
	AllowedOrigins []string
	// Scheduler drives socket sessions' visibility transitions.
	Scheduler clock.Scheduler
}

// Handler serves the modal routes.
type Handler struct {
	provider llm.Provider
	opts     Options
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// New creates a Handler backed by provider.
func New(provider llm.Provider, opts Options) *Handler {
	if opts.Profile.Name == "" {
		opts.Profile = conversation.DefaultProfile()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.New("")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Real{}
	}
	h := &Handler{
		provider: provider,
		opts:     opts,
		logger:   opts.Logger.Named("modal"),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return originAllowed(opts.AllowedOrigins, r) },
	}
	return h
}

// RegisterRoutes mounts all modal routes onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/modal", h.handleWebSocket)
	r.Post("/api/draft", h.handleDraft)
}

// controllerOptions are shared by every controller the handler creates.
func (h *Handler) controllerOptions(sessionID string, sched clock.Scheduler) []conversation.Option {
	opts := []conversation.Option{
		conversation.WithScheduler(sched),
		conversation.WithProfile(h.opts.Profile),
		conversation.WithLogger(h.logger),
		conversation.WithTimeout(h.opts.Timeout),
	}
	if h.opts.Recorder != nil {
		opts = append(opts, conversation.WithRecorder(h.opts.Recorder, sessionID))
	}
	return opts
}

// originAllowed accepts requests without an Origin header, any origin when
// the list contains "*", and otherwise exact scheme://host matches. Entries
// may end in ":*" to allow any port.
func originAllowed(allowed []string, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if len(allowed) == 0 {
		return strings.EqualFold(u.Host, r.Host)
	}
	for _, a := range allowed {
		switch {
		case a == "*":
			return true
		case strings.HasSuffix(a, ":*"):
			if strings.EqualFold(u.Scheme+"://"+u.Hostname(), strings.TrimSuffix(a, ":*")) {
				return true
			}
		case strings.EqualFold(origin, a):
			return true
		}
	}
	return false
}
