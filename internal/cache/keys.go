// Package cache derives request fingerprints and holds generation results
// for a bounded time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"briefforge/internal/artifact"
	"briefforge/internal/util/jsonutil"
)

const fingerprintLen = 16

// Key namespaces. Combined and regenerate keys also carry the model id so
// the same brief cached under flash never answers a pro request.
const (
	prefixAnalysis   = "project_"
	prefixWebsite    = "website_"
	prefixCombined   = "combined_"
	prefixRegenerate = "regenerate_"
)

// Fingerprint hashes text followed by the canonical JSON of inputs and
// returns the first 16 hex characters of the SHA-256 digest.
func Fingerprint(text string, inputs any) string {
	h := sha256.New()
	h.Write([]byte(text))
	if inputs != nil {
		b, err := jsonutil.Canonical(inputs)
		if err != nil {
			b = []byte(fmt.Sprint(inputs))
		}
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}

// AnalysisKey ignores the model id.
func AnalysisKey(req artifact.GenerationRequest) string {
	return prefixAnalysis + Fingerprint(req.RawPrompt, normalizedInputs(req.Inputs))
}

// WebsiteKey ignores the model id.
func WebsiteKey(req artifact.GenerationRequest) string {
	return prefixWebsite + Fingerprint(req.RawPrompt, normalizedInputs(req.Inputs))
}

func CombinedKey(req artifact.GenerationRequest) string {
	return prefixCombined + req.ModelID + "_" + Fingerprint(req.RawPrompt, normalizedInputs(req.Inputs))
}

// RegenerateKey fingerprints the existing code together with the requested
// modifications.
func RegenerateKey(code, modifications, modelID string) string {
	return prefixRegenerate + modelID + "_" + Fingerprint(code, map[string]string{"modifications": modifications})
}

// nil and empty inputs fingerprint the same way.
func normalizedInputs(in artifact.Inputs) artifact.Inputs {
	if in == nil {
		return artifact.Inputs{}
	}
	return in
}
