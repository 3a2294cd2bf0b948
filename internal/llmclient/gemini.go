package llmclient

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/auth/credentials"
	genai "google.golang.org/genai"
)

const (
	DefaultLocation    = "us-central1"
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

// GeminiProvider creates Vertex AI Gemini model handles over the official
// genai client. Rate limiting and retries are left to callers.
type GeminiProvider struct {
	cli *genai.Client
}

var _ Provider = (*GeminiProvider)(nil)

// ConnectGemini builds a Vertex AI client for opts.Project. An empty project
// yields ErrNotConfigured. A credentials file, when given, is loaded
// explicitly; otherwise Application Default Credentials apply.
func ConnectGemini(ctx context.Context, opts ConnectOptions) (Provider, error) {
	project := strings.TrimSpace(opts.Project)
	if project == "" {
		return nil, ErrNotConfigured
	}
	location := strings.TrimSpace(opts.Location)
	if location == "" {
		location = DefaultLocation
	}
	cfg := &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	}
	if path := strings.TrimSpace(opts.CredentialsFile); path != "" {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			CredentialsFile: path,
			Scopes:          []string{cloudPlatformScope},
		})
		if err != nil {
			return nil, fmt.Errorf("llmclient: load credentials %s: %w", path, err)
		}
		cfg.Credentials = creds
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("llmclient: new genai client: %w", err)
	}
	return &GeminiProvider{cli: cli}, nil
}

func (p *GeminiProvider) CreateModel(_ context.Context, cfg ModelConfig) (Model, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("llmclient: model name is empty")
	}
	return &geminiModel{cli: p.cli, cfg: cfg}, nil
}

func (p *GeminiProvider) Close() error { return nil }

type geminiModel struct {
	cli *genai.Client
	cfg ModelConfig
}

// GenerateContent sends text as a single user turn and returns the
// *genai.GenerateContentResponse.
func (m *geminiModel) GenerateContent(ctx context.Context, text string) (any, error) {
	temperature, topP := m.cfg.Temperature, m.cfg.TopP
	resp, err := m.cli.Models.GenerateContent(ctx, m.cfg.Name,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: text}}}},
		&genai.GenerateContentConfig{
			MaxOutputTokens: m.cfg.MaxOutputTokens,
			Temperature:     &temperature,
			TopP:            &topP,
		},
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
