package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.LLM.Provider != ProviderGoogle {
		t.Errorf("expected default provider %q, got %q", ProviderGoogle, cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("expected default model gemini-2.5-flash, got %q", cfg.LLM.Model)
	}
	if cfg.LLM.Timeout != 0 {
		t.Errorf("expected no default timeout, got %s", cfg.LLM.Timeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Owner.Name != "Dehaleesan KR" {
		t.Errorf("unexpected default owner %q", cfg.Owner.Name)
	}
	if cfg.Database.Enabled {
		t.Error("database should be disabled by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.folio.yml")

	original := DefaultConfig()
	original.LLM.Provider = ProviderOpenAI
	original.LLM.Model = "gpt-4o"
	original.LLM.Timeout = 45 * time.Second
	original.LLM.RateLimitRPM = 30
	original.Owner.Name = "Ada Lovelace"
	original.Owner.Skills = []string{"Analysis", "Engines"}
	original.Server.Port = 9000
	original.Database.Enabled = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.LLM.Provider != original.LLM.Provider {
		t.Errorf("provider: got %q, want %q", loaded.LLM.Provider, original.LLM.Provider)
	}
	if loaded.LLM.Model != original.LLM.Model {
		t.Errorf("model: got %q, want %q", loaded.LLM.Model, original.LLM.Model)
	}
	if loaded.LLM.Timeout != original.LLM.Timeout {
		t.Errorf("timeout: got %s, want %s", loaded.LLM.Timeout, original.LLM.Timeout)
	}
	if loaded.LLM.RateLimitRPM != 30 {
		t.Errorf("rate_limit_rpm: got %d, want 30", loaded.LLM.RateLimitRPM)
	}
	if loaded.Owner.Name != original.Owner.Name {
		t.Errorf("owner.name: got %q, want %q", loaded.Owner.Name, original.Owner.Name)
	}
	if len(loaded.Owner.Skills) != 2 || loaded.Owner.Skills[1] != "Engines" {
		t.Errorf("owner.skills: got %v", loaded.Owner.Skills)
	}
	if loaded.Server.Port != 9000 {
		t.Errorf("server.port: got %d, want 9000", loaded.Server.Port)
	}
	if !loaded.Database.Enabled {
		t.Error("database.enabled did not round-trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.LLM.Provider != ProviderGoogle {
		t.Errorf("expected default provider, got %q", cfg.LLM.Provider)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server.port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Owner.Contact != "dehaleesanraju@gmail.com" {
		t.Errorf("owner.contact default lost: %q", cfg.Owner.Contact)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level default lost: %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("FOLIO_LLM__MODEL", "gemini-2.5-pro")
	t.Setenv("FOLIO_SERVER__PORT", "9090")
	t.Setenv("FOLIO_LLM__TIMEOUT", "12s")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LLM.Model != "gemini-2.5-pro" {
		t.Errorf("env override failed: got %q", loaded.LLM.Model)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("nested env override failed: got %d", loaded.Server.Port)
	}
	if loaded.LLM.Timeout != 12*time.Second {
		t.Errorf("duration env override failed: got %s", loaded.LLM.Timeout)
	}
}

func TestProviderSwitchPicksDefaultModel(t *testing.T) {
	t.Setenv("FOLIO_LLM__PROVIDER", "ollama")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.Provider != ProviderOllama {
		t.Fatalf("provider: got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "llama3" {
		t.Errorf("model: got %q, want llama3", cfg.LLM.Model)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty provider", func(c *Config) { c.LLM.Provider = "" }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "anthropic" }},
		{"empty model", func(c *Config) { c.LLM.Model = "" }},
		{"negative timeout", func(c *Config) { c.LLM.Timeout = -time.Second }},
		{"negative rate limit", func(c *Config) { c.LLM.RateLimitRPM = -1 }},
		{"blank owner", func(c *Config) { c.Owner.Name = "  " }},
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"database without path", func(c *Config) { c.Database.Enabled = true; c.Database.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderGoogle, "GOOGLE_API_KEY"},
		{ProviderGenAI, "GOOGLE_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		if got := APIKeyEnvVar(tt.provider); got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestDefaultModelFallsBackToGoogle(t *testing.T) {
	if got := DefaultModel("unknown"); got != "gemini-2.5-flash" {
		t.Errorf("DefaultModel(unknown) = %q", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" Web Dev, IoT ,, Data ")
	want := []string{"Web Dev", "IoT", "Data"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"80", "8080", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "0", "abc", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) should fail", s)
		}
	}
}
