package llm

import (
	"strings"

	"briefforge/internal/llmclient"
)

// ModelID names a supported generation profile.
type ModelID string

const (
	ModelFlash ModelID = "flash"
	ModelPro   ModelID = "pro"

	DefaultModel = ModelFlash
)

// ModelProfile binds a ModelID to a provider model and its sampling limits.
type ModelProfile struct {
	ID              ModelID
	Model           string
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
}

// Config converts the profile to the provider-facing configuration.
func (p ModelProfile) Config() llmclient.ModelConfig {
	return llmclient.ModelConfig{
		Name:            p.Model,
		MaxOutputTokens: p.MaxOutputTokens,
		Temperature:     p.Temperature,
		TopP:            p.TopP,
	}
}

var profiles = map[ModelID]ModelProfile{
	ModelFlash: {ID: ModelFlash, Model: "gemini-2.5-flash", MaxOutputTokens: 8192, Temperature: 0.7, TopP: 0.95},
	ModelPro:   {ID: ModelPro, Model: "gemini-2.5-pro", MaxOutputTokens: 16384, Temperature: 0.7, TopP: 0.95},
}

// NormalizeModelID maps id onto a supported ModelID. Unknown or empty ids
// become DefaultModel and ok is false.
func NormalizeModelID(id string) (ModelID, bool) {
	switch ModelID(strings.ToLower(strings.TrimSpace(id))) {
	case ModelFlash:
		return ModelFlash, true
	case ModelPro:
		return ModelPro, true
	default:
		return DefaultModel, false
	}
}

// ProfileFor returns the profile for id, coercing unknown ids to the default.
func ProfileFor(id string) ModelProfile {
	mid, _ := NormalizeModelID(id)
	return profiles[mid]
}

// SupportedModels lists the supported ids in a stable order.
func SupportedModels() []ModelID {
	return []ModelID{ModelFlash, ModelPro}
}
