package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"briefforge/internal/artifact"
)

// ErrUnparseable is returned when no repair layer yields a JSON object.
var ErrUnparseable = errors.New("normalize: no parseable JSON object in model output")

// DegradedAnalysis is the diagnostic placed in Analysis when combined output
// could not be parsed.
const DegradedAnalysis = "The model response could not be parsed as JSON. The analysis is unavailable and the code was recovered on a best-effort basis."

// cleanJSONText applies fence stripping, outer-object isolation and control
// character removal.
func cleanJSONText(raw string) string {
	return stripControl(outerObject(StripFences(raw)))
}

// ExtractJSON recovers a JSON object from model output using fence
// stripping, outer-object isolation, control-character removal, a plain
// parse and a string-content escaping pass. The result is compacted.
func ExtractJSON(raw string) (json.RawMessage, error) {
	text := cleanJSONText(raw)
	for _, candidate := range []string{text, escapeStringContents(text)} {
		if obj, ok := compactObject(candidate); ok {
			return obj, nil
		}
	}
	return nil, ErrUnparseable
}

// ExtractCombined recovers {analysis, code} from model output. It never
// fails: when every parse attempt is exhausted it returns a degraded payload
// whose Analysis is a diagnostic string and whose Code is a best-effort
// substring of the output.
func ExtractCombined(raw string) (out artifact.CombinedPayload) {
	text := cleanJSONText(raw)
	defer func() {
		if r := recover(); r != nil {
			out = degraded(text)
		}
	}()
	p, err := parseCombinedLayers(text)
	if err != nil {
		return degraded(text)
	}
	return p
}

func parseCombinedLayers(text string) (artifact.CombinedPayload, error) {
	if p, ok := parseCombined(text); ok {
		return p, nil
	}
	if p, ok := parseCombined(escapeStringContents(text)); ok {
		return p, nil
	}
	if fixed, ok := repairCodeField(text); ok {
		if p, ok := parseCombined(fixed); ok {
			return p, nil
		}
		if p, ok := parseCombined(escapeStringContents(fixed)); ok {
			return p, nil
		}
	}
	return artifact.CombinedPayload{}, ErrUnparseable
}

// repairCodeField re-escapes only the "code" value and splices it back.
func repairCodeField(text string) (string, bool) {
	start, end, ok := codeSpan(text)
	if start < 0 || !ok {
		return "", false
	}
	return text[:start] + escapeRaw(text[start:end]) + text[end:], true
}

func parseCombined(text string) (artifact.CombinedPayload, bool) {
	var wire struct {
		Analysis json.RawMessage `json:"analysis"`
		Code     json.RawMessage `json:"code"`
	}
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return artifact.CombinedPayload{}, false
	}
	analysis := json.RawMessage(`{}`)
	if len(wire.Analysis) > 0 && !bytes.Equal(wire.Analysis, []byte("null")) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, wire.Analysis); err == nil {
			analysis = buf.Bytes()
		}
	}
	return artifact.CombinedPayload{Analysis: analysis, Code: decodeCode(wire.Code)}, true
}

func decodeCode(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func degraded(text string) artifact.CombinedPayload {
	diag, _ := json.Marshal(DegradedAnalysis)
	code := ""
	if start, end, _ := codeSpan(text); start >= 0 && end >= start {
		code = strings.TrimRight(strings.TrimSpace(text[start:end]), `"`)
	}
	return artifact.CombinedPayload{Analysis: diag, Code: code}
}

func compactObject(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !json.Valid([]byte(trimmed)) {
		return nil, false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(trimmed)); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
