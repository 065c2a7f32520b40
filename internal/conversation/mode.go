package conversation

import "fmt"

// ModeKind names the two things the modal can do.
type ModeKind string

const (
	// ModeAssistant is a multi-turn Q&A about the portfolio owner.
	ModeAssistant ModeKind = "assistant"
	// ModeDraftHelper turns a one-line reason into a contact-form message.
	ModeDraftHelper ModeKind = "draftHelper"
)

// ParseMode accepts the canonical names plus a couple of spellings used by
// older page markup.
func ParseMode(s string) (ModeKind, error) {
	switch s {
	case "assistant", "chat":
		return ModeAssistant, nil
	case "draftHelper", "draft_helper", "draft":
		return ModeDraftHelper, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// mode is the active session variant. Only the assistant variant carries a
// transcript, so a draft session cannot accumulate entries.
type mode interface {
	kind() ModeKind
}

type assistantMode struct {
	transcript Transcript
}

func (*assistantMode) kind() ModeKind { return ModeAssistant }

type draftHelperMode struct{}

func (draftHelperMode) kind() ModeKind { return ModeDraftHelper }

func newMode(k ModeKind) (mode, error) {
	switch k {
	case ModeAssistant:
		return &assistantMode{}, nil
	case ModeDraftHelper:
		return draftHelperMode{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, k)
	}
}
