package conversation

import "sync"

// Chrome is the per-mode text around the input box.
type Chrome struct {
	Mode        ModeKind `json:"mode"`
	Title       string   `json:"title"`
	SubmitLabel string   `json:"submit_label"`
	Intro       string   `json:"intro"`
}

// Presenter receives every visible side effect of the controller. Calls are
// serialised by the controller and must not call back into it.
type Presenter interface {
	// Reset clears the response area and input, hides the loading indicator
	// and shows the intro for a freshly opened session.
	Reset(Chrome)
	SetVisibility(Visibility)
	// SetBusy toggles the request-in-flight presentation: input disabled,
	// loading indicator shown and response area hidden.
	SetBusy(busy bool)
	AppendEntry(Entry)
	// ResetInput clears and refocuses the input field.
	ResetInput()
	// SetContactMessage fills the contact form's message field.
	SetContactMessage(text string)
}

// HeadlessPresenter keeps the last presented state in memory. It backs the
// non-visual surfaces (MCP tools, the JSON draft endpoint) and tests.
type HeadlessPresenter struct {
	mu         sync.Mutex
	chrome     Chrome
	visibility Visibility
	busy       bool
	entries    []Entry
	contact    string
	resets     int
	history    []Visibility
}

func NewHeadlessPresenter() *HeadlessPresenter {
	return &HeadlessPresenter{}
}

func (p *HeadlessPresenter) Reset(c Chrome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chrome = c
	p.entries = nil
	p.busy = false
}

func (p *HeadlessPresenter) SetVisibility(v Visibility) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visibility = v
	p.history = append(p.history, v)
}

func (p *HeadlessPresenter) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = busy
}

func (p *HeadlessPresenter) AppendEntry(e Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, e)
}

func (p *HeadlessPresenter) ResetInput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets++
}

func (p *HeadlessPresenter) SetContactMessage(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contact = text
}

func (p *HeadlessPresenter) Chrome() Chrome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chrome
}

func (p *HeadlessPresenter) Visibility() Visibility {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visibility
}

// VisibilityHistory lists every visibility the presenter was told about.
func (p *HeadlessPresenter) VisibilityHistory() []Visibility {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Visibility, len(p.history))
	copy(out, p.history)
	return out
}

func (p *HeadlessPresenter) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

func (p *HeadlessPresenter) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *HeadlessPresenter) ContactMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contact
}

// InputResets counts how many times the input was cleared and refocused.
func (p *HeadlessPresenter) InputResets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resets
}
