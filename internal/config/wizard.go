package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your portfolio assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select text-generation provider",
		Items: []string{
			"google — Gemini over HTTP",
			"genai  — Gemini / Vertex AI via the Google SDK",
			"openai — OpenAI or any compatible endpoint",
			"ollama — local models",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderGoogle, ProviderGenAI, ProviderOpenAI, ProviderOllama}
	cfg.LLM.Provider = providers[providerIdx]

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.LLM.Provider),
	}
	if cfg.LLM.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	if cfg.LLM.Provider == ProviderGenAI {
		projectPrompt := promptui.Prompt{Label: "Vertex AI project (blank for the Gemini API)"}
		if cfg.LLM.Project, err = projectPrompt.Run(); err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		if cfg.LLM.Project != "" {
			locationPrompt := promptui.Prompt{Label: "Vertex AI location", Default: "us-central1"}
			if cfg.LLM.Location, err = locationPrompt.Run(); err != nil {
				return nil, fmt.Errorf("location: %w", err)
			}
		}
	}

	// 3. Owner profile.
	namePrompt := promptui.Prompt{
		Label:    "Your name",
		Default:  cfg.Owner.Name,
		Validate: required("name"),
	}
	if cfg.Owner.Name, err = namePrompt.Run(); err != nil {
		return nil, fmt.Errorf("owner name: %w", err)
	}

	skillsPrompt := promptui.Prompt{
		Label:   "Skills (comma-separated)",
		Default: strings.Join(cfg.Owner.Skills, ", "),
	}
	skills, err := skillsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("skills: %w", err)
	}
	cfg.Owner.Skills = splitAndTrim(skills)

	projectsPrompt := promptui.Prompt{
		Label:   "Projects (comma-separated)",
		Default: strings.Join(cfg.Owner.Projects, ", "),
	}
	projects, err := projectsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("projects: %w", err)
	}
	cfg.Owner.Projects = splitAndTrim(projects)

	contactPrompt := promptui.Prompt{
		Label:   "Contact email",
		Default: cfg.Owner.Contact,
	}
	if cfg.Owner.Contact, err = contactPrompt.Run(); err != nil {
		return nil, fmt.Errorf("contact: %w", err)
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if envVar := APIKeyEnvVar(cfg.LLM.Provider); envVar != "" && cfg.LLM.Project == "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running folio serve.\n", envVar)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func required(field string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string, dropping blank items.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
