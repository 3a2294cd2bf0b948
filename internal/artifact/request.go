package artifact

import (
	"fmt"
	"sort"
	"strings"
)

// Inputs carries the structured form answers submitted alongside a brief.
// Values are strings or string lists; anything else is rendered with %v.
type Inputs map[string]any

// String returns the value stored under key as display text. Lists are
// joined with ", ". Missing keys yield "".
func (in Inputs) String(key string) string {
	if in == nil {
		return ""
	}
	v, ok := in[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case []string:
		return joinNonEmpty(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if item == nil {
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		return joinNonEmpty(parts)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Keys returns the input keys in sorted order.
func (in Inputs) Keys() []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinNonEmpty(items []string) string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

// Well-known input keys read by prompt building and fallback generation.
const (
	InputBudget      = "budget"
	InputTimeline    = "timeline"
	InputProjectType = "projectType"
	InputTechStack   = "techStack"
	InputFeatures    = "features"
	InputAudience    = "targetAudience"
)

// GenerationRequest is the fingerprint of one generation call. It is built
// per call and only used to derive a cache key.
type GenerationRequest struct {
	RawPrompt string `json:"rawPrompt"`
	Inputs    Inputs `json:"structuredInputs"`
	ModelID   string `json:"modelId,omitempty"`
}
