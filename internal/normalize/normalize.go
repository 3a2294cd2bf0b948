// Package normalize turns untrusted model output into usable JSON and UI
// component source. Every exported function is total: malformed input
// degrades the result but never panics.
package normalize

import (
	"strings"

	"briefforge/internal/artifact"
)

// Combined runs combined-mode recovery: JSON extraction, then component
// normalization and image sanitization of the recovered code.
func Combined(raw string) artifact.CombinedPayload {
	p := ExtractCombined(raw)
	p.Code = Code(p.Code)
	return p
}

// Website runs website-only mode: the whole fence-stripped output is the
// component source.
func Website(raw string) string {
	return Code(StripFences(raw))
}

// Code normalizes component source and sanitizes its images. Blank input
// stays blank.
func Code(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}
	return SanitizeImages(NormalizeComponent(code))
}
