package llmclient

import (
	"context"
	"errors"
)

var (
	// ErrResponseShape means a provider response matched none of the known
	// text extraction shapes.
	ErrResponseShape = errors.New("llmclient: unrecognized response shape")
	// ErrNotConfigured means no project id was supplied.
	ErrNotConfigured = errors.New("llmclient: project id is not configured")
)

// ModelConfig is the generation configuration a model handle is bound to.
type ModelConfig struct {
	Name            string
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
}

// Model performs single content-generation calls. The response is returned
// as-is; use Extract to read text and usage from it.
type Model interface {
	GenerateContent(ctx context.Context, text string) (any, error)
}

// Provider creates model handles.
type Provider interface {
	CreateModel(ctx context.Context, cfg ModelConfig) (Model, error)
	Close() error
}

// ConnectOptions carries the credentials needed to reach the provider.
type ConnectOptions struct {
	Project         string
	Location        string
	CredentialsFile string
}

// Connector opens a Provider. It is swapped out in tests.
type Connector func(ctx context.Context, opts ConnectOptions) (Provider, error)
