// Package progress shows that a request is in flight.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator is shown while the modal waits for a reply.
type Indicator interface {
	Start(message string)
	Stop()
}

// NewIndicator returns a SpinnerIndicator for interactive terminals, or a
// LineIndicator if the CI environment variable is set.
func NewIndicator(w io.Writer) Indicator {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineIndicator{w: w}
	}
	return &SpinnerIndicator{w: w, interval: 100 * time.Millisecond}
}

// SpinnerIndicator animates a progressbar spinner until Stop.
type SpinnerIndicator struct {
	w        io.Writer
	interval time.Duration

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

func (s *SpinnerIndicator) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar != nil {
		return
	}

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionSetDescription(message),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	s.done = make(chan struct{})

	bar, done := s.bar, s.done
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()
}

func (s *SpinnerIndicator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar == nil {
		return
	}
	close(s.done)
	s.wg.Wait()
	_ = s.bar.Finish()
	s.bar = nil
}

// LineIndicator prints start and stop lines suitable for CI logs.
type LineIndicator struct {
	w       io.Writer
	started time.Time
	active  bool
}

func (l *LineIndicator) Start(message string) {
	if l.active {
		return
	}
	l.active = true
	l.started = time.Now()
	fmt.Fprintf(l.w, "%s...\n", message)
}

func (l *LineIndicator) Stop() {
	if !l.active {
		return
	}
	l.active = false
	fmt.Fprintf(l.w, "done in %s\n", time.Since(l.started).Round(time.Millisecond))
}
