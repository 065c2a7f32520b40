// Package terminal renders the modal in a plain terminal for `folio chat`
// and `folio draft`.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/dehaleesankr/folio/internal/conversation"
	"github.com/dehaleesankr/folio/internal/progress"
)

var _ conversation.Presenter = (*Presenter)(nil)

// Presenter writes controller effects to a terminal.
type Presenter struct {
	mu        sync.Mutex
	out       io.Writer
	indicator progress.Indicator
	contact   string

	title   *color.Color
	intro   *color.Color
	model   *color.Color
	faint   *color.Color
	drafted *color.Color
}

// NewPresenter writes transcript lines to out and shows indicator while busy.
func NewPresenter(out io.Writer, indicator progress.Indicator) *Presenter {
	return &Presenter{
		out:       out,
		indicator: indicator,
		title:     color.New(color.FgCyan, color.Bold),
		intro:     color.New(color.FgCyan),
		model:     color.New(color.FgGreen),
		faint:     color.New(color.Faint),
		drafted:   color.New(color.FgYellow),
	}
}

func (p *Presenter) Reset(c conversation.Chrome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contact = ""
	p.title.Fprintf(p.out, "\n%s\n", c.Title)
	p.intro.Fprintln(p.out, c.Intro)
	p.faint.Fprintf(p.out, "(press Enter to %s, Ctrl+C to leave)\n\n", strings.ToLower(c.SubmitLabel))
}

// SetVisibility only reports the end of a session; the terminal has no
// transitions to animate.
func (p *Presenter) SetVisibility(v conversation.Visibility) {
	if v != conversation.VisibilityClosed {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faint.Fprintln(p.out, "(closed)")
}

func (p *Presenter) SetBusy(busy bool) {
	if busy {
		p.indicator.Start("Thinking")
	} else {
		p.indicator.Stop()
	}
}

// AppendEntry prints model replies. The visitor's own lines are already on
// screen from the prompt.
func (p *Presenter) AppendEntry(e conversation.Entry) {
	if e.Role != conversation.RoleModel {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.model.Fprint(p.out, "AI: ")
	fmt.Fprintln(p.out, e.Text)
	fmt.Fprintln(p.out)
}

func (p *Presenter) ResetInput() {}

func (p *Presenter) SetContactMessage(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contact = text
	p.drafted.Fprintln(p.out, "Drafted message:")
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(p.out, "  %s\n", line)
	}
}

// ContactMessage returns the last drafted message.
func (p *Presenter) ContactMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contact
}
