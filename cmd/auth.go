package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dehaleesankr/folio/internal/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API keys for LLM providers",
	Long: `Store and manage API keys for LLM providers.

Keys are stored in ~/.folio/credentials.json and used as a fallback
when environment variables are not set.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store an API key",
	Long: `Store an API key for persistent use.

Valid providers: google (also used by genai), openai.
Get a Gemini key at https://aistudio.google.com/apikey and an OpenAI key
at https://platform.openai.com/api-keys`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: auth.Providers,
	RunE:      runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have credentials",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [provider]",
	Short: "Remove stored credentials",
	Long: `Remove stored credentials for a provider.

If no provider is specified, removes all stored credentials.
Valid providers: google, openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	provider := args[0]

	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s API key", provider),
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("API key cannot be empty")
			}
			return nil
		},
	}
	key, err := prompt.Run()
	if err != nil {
		return err
	}

	if err := creds.Set(provider, strings.TrimSpace(key)); err != nil {
		return err
	}
	if err := auth.Save(creds); err != nil {
		return err
	}

	path, _ := auth.CredentialPath()
	fmt.Fprintf(os.Stderr, "%s API key saved to %s\n", provider, path)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	envVars := map[string][]string{
		"google": {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
		"openai": {"OPENAI_API_KEY"},
	}
	for _, provider := range auth.Providers {
		status := "not configured"
		if creds.Key(provider) != "" {
			status = "configured (stored)"
		}
		for _, env := range envVars[provider] {
			if os.Getenv(env) != "" {
				status = fmt.Sprintf("configured (env var: %s)", env)
				break
			}
		}
		fmt.Printf("%-12s %s\n", provider, status)
	}

	// Ollama (always available locally)
	fmt.Println("ollama       available (local)")

	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	var provider string
	if len(args) > 0 {
		provider = args[0]
	}
	if err := creds.Remove(provider); err != nil {
		return err
	}
	if err := auth.Save(creds); err != nil {
		return err
	}

	if provider == "" {
		fmt.Println("All stored credentials removed.")
	} else {
		fmt.Printf("%s credentials removed.\n", provider)
	}
	return nil
}
