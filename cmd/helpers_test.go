package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dehaleesankr/folio/internal/config"
	"github.com/dehaleesankr/folio/internal/conversation"
)

func TestProfileFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Owner.Name = "Ada Lovelace"
	cfg.Owner.Skills = []string{"Analysis"}

	p := profileFromConfig(cfg)
	if p.Name != "Ada Lovelace" || p.FirstName() != "Ada" {
		t.Errorf("profile = %+v", p)
	}
	if len(p.Skills) != 1 || p.Skills[0] != "Analysis" {
		t.Errorf("skills = %v", p.Skills)
	}
}

func TestRecorderIsNilWithoutStore(t *testing.T) {
	a := &app{}
	if a.recorder() != nil {
		t.Error("expected a nil Recorder interface when history is disabled")
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".folio.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 70000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })

	_, err := loadConfig()
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("loadConfig error = %v", err)
	}
}

func TestOneLine(t *testing.T) {
	if got := oneLine("Hi,\n\n  there\tfriend "); got != "Hi, there friend" {
		t.Errorf("oneLine = %q", got)
	}
}

func TestNeedsFreshSession(t *testing.T) {
	tests := []struct {
		name  string
		reply conversation.Reply
		want  bool
	}{
		{"draft with message", conversation.Reply{Mode: conversation.ModeDraftHelper, Text: "Hello"}, true},
		{"draft cleaned to empty", conversation.Reply{Mode: conversation.ModeDraftHelper, Text: ""}, true},
		{"draft discarded", conversation.Reply{Mode: conversation.ModeDraftHelper, Discarded: true}, false},
		{"assistant reply", conversation.Reply{Mode: conversation.ModeAssistant, Text: "Hi"}, false},
		{"blank submit", conversation.Reply{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsFreshSession(tt.reply); got != tt.want {
				t.Errorf("needsFreshSession(%+v) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}
