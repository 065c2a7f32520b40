// Package conversation implements the portfolio's AI modal: a two-mode
// controller that owns visibility, input lifecycle, the chat transcript and
// dispatch to a text-generation backend.
package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dehaleesankr/folio/internal/clock"
	"github.com/dehaleesankr/folio/internal/llm"
)

const (
	// FallbackReply is shown when the backend answered without any text.
	FallbackReply = "Error: No response."
	// errorPrefix precedes the message of a failed backend call.
	errorPrefix = "Error: "
)

var (
	ErrUnknownMode = errors.New("unknown modal mode")
	ErrNotOpen     = errors.New("modal is not open")
	ErrBusy        = errors.New("a request is already in flight")
)

// Exchange describes one completed submission.
type Exchange struct {
	SessionID string
	Mode      ModeKind
	Prompt    string
	Reply     string
	Duration  time.Duration
	At        time.Time
}

// Recorder persists completed exchanges. It is never read back into a
// transcript.
type Recorder interface {
	RecordExchange(ctx context.Context, e Exchange) error
}

// Reply is the outcome of a non-empty submission.
type Reply struct {
	Mode ModeKind
	// Text is the model reply in assistant mode and the cleaned contact
	// message in draft-helper mode.
	Text string
	// Discarded is set when the modal was reopened while the request was
	// in flight, so the reply was not applied.
	Discarded bool
}

// Controller drives one modal. All state changes go through its methods;
// timers from the scheduler re-enter through the same lock.
type Controller struct {
	provider  llm.Provider
	presenter Presenter
	scheduler clock.Scheduler
	profile   Profile
	logger    *zap.Logger
	recorder  Recorder
	sessionID string
	timeout   time.Duration
	now       func() time.Time

	mu         sync.Mutex
	mode       mode
	generation uint64
	visibility Visibility
	visSeq     uint64
	pending    clock.Timer
	busy       bool
}

// Option customises a Controller.
type Option func(*Controller)

// WithScheduler replaces the real-time scheduler used for transitions.
func WithScheduler(s clock.Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

func WithProfile(p Profile) Option {
	return func(c *Controller) { c.profile = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRecorder records each completed exchange under the given session id.
func WithRecorder(r Recorder, sessionID string) Option {
	return func(c *Controller) {
		c.recorder = r
		c.sessionID = sessionID
	}
}

// WithTimeout bounds each backend call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// New creates a closed controller.
func New(provider llm.Provider, presenter Presenter, opts ...Option) *Controller {
	c := &Controller{
		provider:  provider,
		presenter: presenter,
		scheduler: clock.Real{},
		profile:   DefaultProfile(),
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sessionID != "" {
		c.logger = c.logger.With(zap.String("session_id", c.sessionID))
	}
	return c
}

// Open starts a fresh session in the given mode and reveals the modal.
// Calling it again before Close simply resets the session.
func (c *Controller) Open(k ModeKind) error {
	m, err := newMode(k)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = m
	c.generation++
	c.presenter.Reset(c.profile.Chrome(k))

	if c.visibility != VisibilityOpen {
		c.stopPendingLocked()
		c.setVisibilityLocked(VisibilityOpening)
		c.scheduleLocked(openDelay, VisibilityOpening, VisibilityOpen)
	}

	c.logger.Debug("modal opened", zap.String("mode", string(k)))
	return nil
}

// Close starts the hide transition. Closing a closed or closing modal does
// nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	if c.visibility == VisibilityClosed || c.visibility == VisibilityClosing {
		return
	}
	c.stopPendingLocked()
	c.setVisibilityLocked(VisibilityClosing)
	c.scheduleLocked(closeDelay, VisibilityClosing, VisibilityClosed)
}

// Submit sends the visitor's text in the active mode. Blank input is ignored
// and returns a zero Reply. Backend failures never surface as errors: they
// become the reply text. The only errors are ErrNotOpen and ErrBusy.
func (c *Controller) Submit(ctx context.Context, raw string) (Reply, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Reply{}, nil
	}

	c.mu.Lock()
	if c.mode == nil || c.visibility == VisibilityClosed {
		c.mu.Unlock()
		return Reply{}, ErrNotOpen
	}
	if c.busy {
		c.mu.Unlock()
		return Reply{}, ErrBusy
	}

	c.busy = true
	gen := c.generation
	active := c.mode
	c.presenter.SetBusy(true)

	var req llm.CompletionRequest
	switch m := active.(type) {
	case *assistantMode:
		entry := Entry{Role: RoleUser, Text: text}
		m.transcript.Append(entry)
		c.presenter.AppendEntry(entry)
		req = c.assistantRequestLocked(m)
	case draftHelperMode:
		req = llm.CompletionRequest{
			Messages: []llm.Message{{Role: llm.RoleUser, Content: c.profile.DraftPrompt(text)}},
		}
	}
	c.mu.Unlock()

	started := c.now()
	replyText := c.generate(ctx, req)
	elapsed := c.now().Sub(started)

	c.mu.Lock()
	reply := Reply{Mode: active.kind(), Text: replyText}
	if gen != c.generation {
		reply.Discarded = true
		c.logger.Info("discarding reply for a replaced session", zap.String("mode", string(reply.Mode)))
	} else {
		switch m := active.(type) {
		case *assistantMode:
			entry := Entry{Role: RoleModel, Text: replyText}
			m.transcript.Append(entry)
			c.presenter.AppendEntry(entry)
		case draftHelperMode:
			reply.Text = CleanDraft(replyText)
			c.presenter.SetContactMessage(reply.Text)
			c.closeLocked()
		}
	}
	c.busy = false
	c.presenter.SetBusy(false)
	c.presenter.ResetInput()
	c.mu.Unlock()

	c.record(ctx, Exchange{
		SessionID: c.sessionID,
		Mode:      reply.Mode,
		Prompt:    text,
		Reply:     reply.Text,
		Duration:  elapsed,
		At:        started,
	})

	return reply, nil
}

func (c *Controller) assistantRequestLocked(m *assistantMode) llm.CompletionRequest {
	msgs := make([]llm.Message, 0, m.transcript.Len()+1)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: c.profile.SystemInstruction()})
	msgs = append(msgs, m.transcript.Messages()...)
	return llm.CompletionRequest{Messages: msgs}
}

// generate performs the single backend call and folds every failure into
// display text.
func (c *Controller) generate(ctx context.Context, req llm.CompletionRequest) string {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		c.logger.Warn("generation failed", zap.String("provider", c.provider.Name()), zap.Error(err))
		return errorPrefix + err.Error()
	}
	if resp == nil || resp.Content == "" {
		c.logger.Warn("generation returned no text", zap.String("provider", c.provider.Name()))
		return FallbackReply
	}
	c.logger.Debug("generation complete",
		zap.String("model", resp.Model),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens),
		zap.Float64("cost_usd", llm.EstimateCost(resp.Model, resp.InputTokens, resp.OutputTokens)),
	)
	return resp.Content
}

func (c *Controller) record(ctx context.Context, e Exchange) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordExchange(context.WithoutCancel(ctx), e); err != nil {
		c.logger.Error("recording exchange", zap.Error(err))
	}
}

func (c *Controller) setVisibilityLocked(v Visibility) {
	c.visibility = v
	c.visSeq++
	c.presenter.SetVisibility(v)
}

// scheduleLocked arms a transition from -> to. A timer that fires after
// another transition has happened is ignored.
func (c *Controller) scheduleLocked(d time.Duration, from, to Visibility) {
	seq := c.visSeq
	c.pending = c.scheduler.AfterFunc(d, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.visSeq != seq || c.visibility != from {
			return
		}
		c.pending = nil
		c.setVisibilityLocked(to)
	})
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// Shutdown cancels any pending transition timer.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopPendingLocked()
}

// Mode reports the active mode, if the modal has been opened.
func (c *Controller) Mode() (ModeKind, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == nil {
		return "", false
	}
	return c.mode.kind(), true
}

// Transcript returns a copy of the assistant transcript. It is always empty
// in draft-helper mode.
func (c *Controller) Transcript() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.mode.(*assistantMode); ok {
		return m.transcript.Entries()
	}
	return []Entry{}
}

func (c *Controller) Visibility() Visibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibility
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}
