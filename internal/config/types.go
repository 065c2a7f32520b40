package config

import "time"

// ProviderType identifies a text-generation backend.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderGenAI  ProviderType = "genai"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	LLM      LLMConfig      `yaml:"llm" koanf:"llm"`
	Owner    OwnerConfig    `yaml:"owner" koanf:"owner"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
}

// LLMConfig selects and tunes the backend the modal talks to.
type LLMConfig struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	BaseURL  string       `yaml:"base_url,omitempty" koanf:"base_url"`
	// Project and Location select Vertex AI for the genai provider.
	Project  string `yaml:"project,omitempty" koanf:"project"`
	Location string `yaml:"location,omitempty" koanf:"location"`
	// Timeout bounds a single request. Zero waits for as long as the
	// connection does.
	Timeout      time.Duration `yaml:"timeout" koanf:"timeout"`
	RateLimitRPM int           `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`
}

// OwnerConfig describes the person the portfolio belongs to.
type OwnerConfig struct {
	Name     string   `yaml:"name" koanf:"name"`
	Skills   []string `yaml:"skills" koanf:"skills"`
	Projects []string `yaml:"projects" koanf:"projects"`
	Contact  string   `yaml:"contact" koanf:"contact"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" koanf:"port"`
	SiteDir        string   `yaml:"site_dir,omitempty" koanf:"site_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	// AdminToken enables the exchange log routes when set.
	AdminToken string `yaml:"admin_token,omitempty" koanf:"admin_token"`
}

type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	// File, when set, adds a rotated JSON sink next to the console output.
	File       string `yaml:"file,omitempty" koanf:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" koanf:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" koanf:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" koanf:"max_age_days"`
}

type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}
