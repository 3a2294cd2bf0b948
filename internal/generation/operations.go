package generation

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"briefforge/internal/artifact"
	"briefforge/internal/cache"
	"briefforge/internal/fallback"
	"briefforge/internal/llm"
	"briefforge/internal/normalize"
	"briefforge/internal/prompt"
)

// errEmptyCode reports model output that normalizes to no component source.
var errEmptyCode = errors.New("generation: model output contains no component code")

// Analyze produces an analysis document for a brief. The result is the
// document as compact JSON text.
func (s *Service) Analyze(ctx context.Context, rawPrompt string, inputs artifact.Inputs) artifact.AnalysisResult {
	req := artifact.GenerationRequest{RawPrompt: rawPrompt, Inputs: inputs, ModelID: s.resolveModel("")}
	value, env := execute(ctx, s, job[string]{
		op:      "analyze",
		modelID: req.ModelID,
		key:     cache.AnalysisKey(req),
		prompt:  func() string { return prompt.BuildAnalysisPrompt(rawPrompt, inputs) },
		build: func(text string) (string, bool, error) {
			doc, err := normalize.ExtractJSON(text)
			if err != nil {
				return "", false, err
			}
			return string(doc), false, nil
		},
		fallback: func() string { return fallback.AnalysisJSON(rawPrompt, inputs) },
		policy:   cacheFallback,
	})
	return artifact.AnalysisResult{Result: value, Envelope: env}
}

// GenerateWebsite produces one component implementing the brief.
func (s *Service) GenerateWebsite(ctx context.Context, rawPrompt string, inputs artifact.Inputs) artifact.WebsiteResult {
	req := artifact.GenerationRequest{RawPrompt: rawPrompt, Inputs: inputs, ModelID: s.resolveModel("")}
	value, env := execute(ctx, s, job[string]{
		op:       "website",
		modelID:  req.ModelID,
		key:      cache.WebsiteKey(req),
		prompt:   func() string { return prompt.BuildWebsitePrompt(rawPrompt, inputs) },
		build:    websiteCode,
		fallback: func() string { return fallback.Website(rawPrompt) },
		policy:   cacheFallback,
	})
	return artifact.WebsiteResult{HTMLCode: value, Envelope: env}
}

// GenerateCombined produces the analysis and the component in one model
// call. Unparseable analysis degrades to a diagnostic string; missing code
// is replaced by the fallback component and the result is marked as mock.
func (s *Service) GenerateCombined(ctx context.Context, rawPrompt string, inputs artifact.Inputs, modelID string) artifact.CombinedResult {
	req := artifact.GenerationRequest{RawPrompt: rawPrompt, Inputs: inputs, ModelID: s.resolveModel(modelID)}
	value, env := execute(ctx, s, job[artifact.CombinedPayload]{
		op:      "combined",
		modelID: req.ModelID,
		key:     cache.CombinedKey(req),
		prompt:  func() string { return prompt.BuildCombinedPrompt(rawPrompt, inputs) },
		build: func(text string) (artifact.CombinedPayload, bool, error) {
			p := normalize.Combined(text)
			if strings.TrimSpace(p.Code) == "" {
				p.Code = fallback.Website(rawPrompt)
				return p, true, nil
			}
			return p, false, nil
		},
		fallback: func() artifact.CombinedPayload { return fallback.Combined(rawPrompt, inputs) },
		policy:   skipFallbackCache,
	})
	return artifact.CombinedResult{Result: value, Envelope: env}
}

// Regenerate restyles existing code. On any failure it returns the code
// unchanged with IsMock set.
func (s *Service) Regenerate(ctx context.Context, existingCode, modifications, modelID string) artifact.RegenerateResult {
	mid := s.resolveModel(modelID)
	value, env := execute(ctx, s, job[string]{
		op:       "regenerate",
		modelID:  mid,
		key:      cache.RegenerateKey(existingCode, modifications, mid),
		prompt:   func() string { return prompt.BuildRegeneratePrompt(existingCode, modifications) },
		build:    websiteCode,
		fallback: func() string { return existingCode },
		policy:   skipFallbackCache,
	})
	return artifact.RegenerateResult{HTMLCode: value, Envelope: env}
}

func websiteCode(text string) (string, bool, error) {
	code := normalize.Website(text)
	if strings.TrimSpace(code) == "" {
		return "", false, errEmptyCode
	}
	return code, false, nil
}

// resolveModel maps a caller-supplied id onto a supported one; an empty id
// means the service default.
func (s *Service) resolveModel(id string) string {
	if strings.TrimSpace(id) == "" {
		id = s.defaultModel
	}
	mid, ok := llm.NormalizeModelID(id)
	if !ok && strings.TrimSpace(id) != "" {
		s.log.Warn("unsupported model id; using default", zap.String("requested", id), zap.String("model_id", string(mid)))
	}
	return string(mid)
}
