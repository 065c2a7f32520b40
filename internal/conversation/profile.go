package conversation

import (
	"fmt"
	"strings"
)

// namePlaceholder is the sign-off token the draft prompt asks the model to
// leave for the visitor.
const namePlaceholder = "[Name]"

// Profile describes the portfolio owner. It feeds the assistant's system
// instruction, the draft prompt and the modal chrome.
type Profile struct {
	Name     string
	Skills   []string
	Projects []string
	Contact  string
}

// DefaultProfile returns the owner the site was originally built for.
func DefaultProfile() Profile {
	return Profile{
		Name:     "Dehaleesan KR",
		Skills:   []string{"Web Dev", "IoT", "Data Analytics (Power BI)"},
		Projects: []string{"City Bus Detection", "Bulb Rot Disease AI", "Responsive Web Design"},
		Contact:  "dehaleesanraju@gmail.com",
	}
}

// FirstName is the first word of Name.
func (p Profile) FirstName() string {
	if f := strings.Fields(p.Name); len(f) > 0 {
		return f[0]
	}
	return p.Name
}

// SystemInstruction is sent alongside every assistant request.
func (p Profile) SystemInstruction() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the professional AI assistant for %s.\n", p.Name)
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s.\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Projects) > 0 {
		fmt.Fprintf(&b, "Projects: %s.\n", strings.Join(p.Projects, ", "))
	}
	if p.Contact != "" {
		fmt.Fprintf(&b, "Contact: %s.\n", p.Contact)
	}
	b.WriteString("Answer concisely.")
	return b.String()
}

// DraftPrompt builds the one-shot draft-helper prompt for the visitor's reason.
func (p Profile) DraftPrompt(reason string) string {
	return fmt.Sprintf("Draft a short contact message to %s for: \"%s\". Sign off with %s.",
		p.FirstName(), reason, namePlaceholder)
}

// Chrome returns the modal title, button label and intro for a mode.
func (p Profile) Chrome(k ModeKind) Chrome {
	if k == ModeAssistant {
		return Chrome{
			Mode:        ModeAssistant,
			Title:       "Ask AI Assistant",
			SubmitLabel: "Send",
			Intro:       fmt.Sprintf("Hi! Ask me about %s's projects or skills.", p.FirstName()),
		}
	}
	return Chrome{
		Mode:        ModeDraftHelper,
		Title:       "Draft Message",
		SubmitLabel: "Draft",
		Intro:       `Type your reason for contacting (e.g., "Job offer"), and I will draft a message.`,
	}
}

// CleanDraft strips every name placeholder and surrounding whitespace.
func CleanDraft(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, namePlaceholder, ""))
}
