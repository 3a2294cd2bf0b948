package artifact

import "encoding/json"

// Usage mirrors the provider's token accounting for one call.
type Usage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// Envelope holds the flags shared by every generation result.
type Envelope struct {
	FromCache bool   `json:"fromCache"`
	IsMock    bool   `json:"isMock"`
	Usage     *Usage `json:"usage"`
}

// AnalysisResult is returned by Analyze. Result is the analysis document
// encoded as JSON text.
type AnalysisResult struct {
	Result string `json:"result"`
	Envelope
}

// WebsiteResult is returned by GenerateWebsite.
type WebsiteResult struct {
	HTMLCode string `json:"htmlCode"`
	Envelope
}

// RegenerateResult is returned by Regenerate.
type RegenerateResult struct {
	HTMLCode string `json:"htmlCode"`
	Envelope
}

// CombinedPayload is the {analysis, code} pair produced in combined mode.
// Analysis is a JSON object, or a JSON string holding a diagnostic when the
// model output could not be parsed.
type CombinedPayload struct {
	Analysis json.RawMessage `json:"analysis"`
	Code     string          `json:"code"`
}

// Degraded reports whether Analysis carries a diagnostic string instead of
// a document.
func (p CombinedPayload) Degraded() bool {
	for _, b := range p.Analysis {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return true
		default:
			return false
		}
	}
	return len(p.Analysis) == 0
}

// Document decodes Analysis into an AnalysisDocument. It reports false when
// Analysis is not an object or does not decode.
func (p CombinedPayload) Document() (AnalysisDocument, bool) {
	var doc AnalysisDocument
	if p.Degraded() {
		return doc, false
	}
	if err := json.Unmarshal(p.Analysis, &doc); err != nil {
		return doc, false
	}
	return doc, true
}

// CombinedResult is returned by GenerateCombined.
type CombinedResult struct {
	Result CombinedPayload `json:"result"`
	Envelope
}
