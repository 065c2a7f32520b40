package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrUnsupportedProvider is returned by NewProvider for unknown provider names.
var ErrUnsupportedProvider = errors.New("unsupported provider type")

// Options selects and configures a provider.
type Options struct {
	Type    string
	Model   string
	BaseURL string
	// APIKey overrides the provider's environment variable when set.
	APIKey string

	// Vertex AI settings, only read by the genai provider.
	Project  string
	Location string
}

// googleAPIKey prefers an explicit key, then GOOGLE_API_KEY, then
// GEMINI_API_KEY.
func googleAPIKey(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if k := os.Getenv("GOOGLE_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("GEMINI_API_KEY")
}

// NewProvider creates a provider for the given options.
// Supported types: "google", "genai", "openai", "ollama".
func NewProvider(ctx context.Context, opts Options) (Provider, error) {
	switch opts.Type {
	case "google":
		apiKey := googleAPIKey(opts.APIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		return NewGoogleProvider(apiKey, opts.Model, opts.BaseURL), nil

	case "genai":
		apiKey := googleAPIKey(opts.APIKey)
		if apiKey == "" && (opts.Project == "" || opts.Location == "") {
			return nil, fmt.Errorf("GOOGLE_API_KEY or a Vertex project and location are required")
		}
		return NewGenAIProvider(ctx, GenAIOptions{
			APIKey:   apiKey,
			Project:  opts.Project,
			Location: opts.Location,
			Model:    opts.Model,
			BaseURL:  opts.BaseURL,
		})

	case "openai":
		apiKey := opts.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, opts.Model, opts.BaseURL), nil

	case "ollama":
		host := opts.BaseURL
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, opts.Model), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, opts.Type)
	}
}
