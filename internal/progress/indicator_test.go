package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewIndicatorPicksLineModeInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewIndicator(&bytes.Buffer{}).(*LineIndicator); !ok {
		t.Error("expected LineIndicator in CI")
	}
}

func TestNewIndicatorPicksSpinnerInteractively(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewIndicator(&bytes.Buffer{}).(*SpinnerIndicator); !ok {
		t.Error("expected SpinnerIndicator outside CI")
	}
}

func TestLineIndicator(t *testing.T) {
	var buf bytes.Buffer
	l := &LineIndicator{w: &buf}

	l.Stop() // no-op before Start
	l.Start("Thinking")
	l.Start("Thinking") // ignored while active
	l.Stop()

	out := buf.String()
	if strings.Count(out, "Thinking...") != 1 {
		t.Errorf("expected one start line, got %q", out)
	}
	if !strings.Contains(out, "done in") {
		t.Errorf("expected a stop line, got %q", out)
	}
}

func TestSpinnerStartStop(t *testing.T) {
	buf := &syncBuffer{}
	s := &SpinnerIndicator{w: buf, interval: time.Millisecond}

	s.Start("Thinking")
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop() // second Stop is harmless

	if !strings.Contains(buf.String(), "Thinking") {
		t.Errorf("spinner never drew its description: %q", buf.String())
	}

	// The indicator can be reused.
	s.Start("Drafting")
	s.Stop()
}
