package conversation

import "time"

// Visibility is the modal's show/hide state. Opening and Closing last for the
// duration of the CSS transition.
type Visibility int

const (
	VisibilityClosed Visibility = iota
	VisibilityOpening
	VisibilityOpen
	VisibilityClosing
)

const (
	// openDelay lets the container render before the fade-in class flips.
	openDelay = 10 * time.Millisecond
	// closeDelay matches the fade-out transition.
	closeDelay = 300 * time.Millisecond
)

func (v Visibility) String() string {
	switch v {
	case VisibilityClosed:
		return "closed"
	case VisibilityOpening:
		return "opening"
	case VisibilityOpen:
		return "open"
	case VisibilityClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Shown reports whether the modal container is in the document flow.
func (v Visibility) Shown() bool {
	return v != VisibilityClosed
}
