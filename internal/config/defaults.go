package config

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[ProviderType]string{
	ProviderGoogle: "gemini-2.5-flash",
	ProviderGenAI:  "gemini-2.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3",
}

// DefaultModel returns the default model for a provider, or the Google
// default if the provider is unknown.
func DefaultModel(p ProviderType) string {
	if m, ok := defaultModels[p]; ok {
		return m
	}
	return defaultModels[ProviderGoogle]
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: ProviderGoogle,
			Model:    DefaultModel(ProviderGoogle),
		},
		Owner: OwnerConfig{
			Name:     "Dehaleesan KR",
			Skills:   []string{"Web Dev", "IoT", "Data Analytics (Power BI)"},
			Projects: []string{"City Bus Detection", "Bulb Rot Disease AI", "Responsive Web Design"},
			Contact:  "dehaleesanraju@gmail.com",
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Database: DatabaseConfig{
			Enabled: false,
			Path:    ".folio/exchanges.db",
		},
	}
}
