package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIOptions configures the SDK-backed Gemini provider. Project and
// Location select Vertex AI; otherwise APIKey targets the Gemini API.
type GenAIOptions struct {
	APIKey   string
	Project  string
	Location string
	Model    string
	BaseURL  string
}

// GenAIProvider implements Provider with the official google.golang.org/genai
// client. It follows the same extraction rule as GoogleProvider.
type GenAIProvider struct {
	client *genai.Client
	model  string
}

// NewGenAIProvider creates a GenAI client for either backend.
func NewGenAIProvider(ctx context.Context, opts GenAIOptions) (*GenAIProvider, error) {
	cfg := &genai.ClientConfig{}
	switch {
	case opts.Project != "" && opts.Location != "":
		cfg.Project = opts.Project
		cfg.Location = opts.Location
		cfg.Backend = genai.BackendVertexAI
	case opts.APIKey != "":
		cfg.APIKey = opts.APIKey
		cfg.Backend = genai.BackendGeminiAPI
	default:
		return nil, fmt.Errorf("genai provider needs an API key or a Vertex project and location")
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAIProvider{client: client, model: opts.Model}, nil
}

func (p *GenAIProvider) Name() string {
	return "genai"
}

func (p *GenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	contents, cfg := genaiRequest(req)

	res, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai generate content: %w", err)
	}

	out := &CompletionResponse{
		Content: genaiFirstText(res),
		Model:   model,
	}
	if len(res.Candidates) > 0 && res.Candidates[0] != nil {
		out.FinishReason = string(res.Candidates[0].FinishReason)
	}
	if res.UsageMetadata != nil {
		out.InputTokens = int(res.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(res.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}

// genaiRequest converts the conversation into SDK contents and config.
func genaiRequest(req CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	var contents []*genai.Content
	for _, m := range req.Messages {
		switch m.Role {
		case RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case RoleModel:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		}
	}

	cfg := &genai.GenerateContentConfig{}
	if system := req.SystemPrompt(); system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	return contents, cfg
}

// genaiFirstText reads the first candidate's first part. res.Text() would
// concatenate every part, which is not what callers expect.
func genaiFirstText(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 {
		return ""
	}
	c := res.Candidates[0]
	if c == nil || c.Content == nil || len(c.Content.Parts) == 0 || c.Content.Parts[0] == nil {
		return ""
	}
	return c.Content.Parts[0].Text
}
