// Package auth stores provider API keys outside the project config so they
// can be reused across portfolios without living in .folio.yml.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// APIKeyCredentials stores an API key for a provider.
type APIKeyCredentials struct {
	APIKey string `json:"api_key,omitempty"`
}

// Credentials holds stored credentials for all providers. The google entry
// serves both the HTTP and SDK Gemini providers.
type Credentials struct {
	Google *APIKeyCredentials `json:"google,omitempty"`
	OpenAI *APIKeyCredentials `json:"openai,omitempty"`
}

// Providers lists the provider names that accept a stored key.
var Providers = []string{"google", "openai"}

// CredentialPath returns the path to the credentials file (~/.folio/credentials.json).
func CredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".folio", "credentials.json"), nil
}

// Load reads credentials from ~/.folio/credentials.json.
// Returns empty credentials if the file doesn't exist.
func Load() (*Credentials, error) {
	path, err := CredentialPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return &creds, nil
}

// Save writes credentials to ~/.folio/credentials.json with restricted permissions.
func Save(creds *Credentials) error {
	path, err := CredentialPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// Set stores key for provider, replacing any previous value.
func (c *Credentials) Set(provider, key string) error {
	switch normalize(provider) {
	case "google":
		c.Google = &APIKeyCredentials{APIKey: key}
	case "openai":
		c.OpenAI = &APIKeyCredentials{APIKey: key}
	default:
		return fmt.Errorf("no stored credentials for provider %q", provider)
	}
	return nil
}

// Remove forgets the key for provider. An empty provider removes all keys.
func (c *Credentials) Remove(provider string) error {
	switch normalize(provider) {
	case "":
		*c = Credentials{}
	case "google":
		c.Google = nil
	case "openai":
		c.OpenAI = nil
	default:
		return fmt.Errorf("no stored credentials for provider %q", provider)
	}
	return nil
}

// Key returns the stored key for provider, or "".
func (c *Credentials) Key(provider string) string {
	var stored *APIKeyCredentials
	switch normalize(provider) {
	case "google":
		stored = c.Google
	case "openai":
		stored = c.OpenAI
	}
	if stored == nil {
		return ""
	}
	return stored.APIKey
}

// GetAPIKey returns the API key for the given provider.
// It checks the environment variable first, then falls back to stored credentials.
func GetAPIKey(provider string) string {
	// Priority 1: Environment variable.
	switch normalize(provider) {
	case "google":
		if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
			return key
		}
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
	default:
		return ""
	}

	// Priority 2: Stored credentials.
	creds, err := Load()
	if err != nil {
		return ""
	}
	return creds.Key(provider)
}

// normalize folds the SDK provider onto the key it shares with HTTP Gemini.
func normalize(provider string) string {
	if provider == "genai" {
		return "google"
	}
	return provider
}
