package llmclient

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"briefforge/internal/artifact"
)

// Extracted is the usable content of a provider response.
type Extracted struct {
	Text  string
	Usage *artifact.Usage
}

type textExtractor struct {
	name string
	fn   func(resp any) (string, bool)
}

// Order matters: some shapes are structural subsets of later ones.
var textExtractors = []textExtractor{
	{"text accessor", textAccessor},
	{"text field", textField},
	{"nested response", nestedResponse},
	{"candidate parts", candidateParts},
}

// Extract reads text and usage from a provider response. Text extractors
// are tried in order; the first one yielding non-blank text wins. When none
// does, the error wraps ErrResponseShape.
func Extract(resp any) (out Extracted, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = Extracted{}, fmt.Errorf("%w: %v", ErrResponseShape, r)
		}
	}()
	for _, ex := range textExtractors {
		if text, ok := ex.fn(resp); ok && strings.TrimSpace(text) != "" {
			return Extracted{Text: text, Usage: extractUsage(resp)}, nil
		}
	}
	return Extracted{}, fmt.Errorf("%w: %T", ErrResponseShape, resp)
}

func textAccessor(resp any) (string, bool) {
	v, ok := method(resp, "Text")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func textField(resp any) (string, bool) {
	v, ok := field(resp, "text")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func nestedResponse(resp any) (string, bool) {
	inner, ok := member(resp, "response")
	if !ok {
		return "", false
	}
	if s, ok := textAccessor(inner); ok && strings.TrimSpace(s) != "" {
		return s, true
	}
	return textField(inner)
}

func candidateParts(resp any) (string, bool) {
	if s, ok := partsText(resp); ok {
		return s, true
	}
	if inner, ok := member(resp, "response"); ok {
		return partsText(inner)
	}
	return "", false
}

func partsText(resp any) (string, bool) {
	cands, ok := member(resp, "candidates")
	if !ok {
		return "", false
	}
	first, ok := index(cands, 0)
	if !ok {
		return "", false
	}
	content, ok := member(first, "content")
	if !ok {
		return "", false
	}
	parts, ok := member(content, "parts")
	if !ok {
		return "", false
	}
	var b strings.Builder
	found := false
	for i := 0; ; i++ {
		part, ok := index(parts, i)
		if !ok {
			break
		}
		if t, ok := member(part, "text"); ok {
			if s, ok := t.(string); ok {
				b.WriteString(s)
				found = true
			}
		}
	}
	return b.String(), found
}

func extractUsage(resp any) *artifact.Usage {
	meta, ok := member(resp, "usageMetadata")
	if !ok || isNil(meta) {
		inner, ok := member(resp, "response")
		if !ok {
			return nil
		}
		if meta, ok = member(inner, "usageMetadata"); !ok || isNil(meta) {
			return nil
		}
	}
	read := func(name string) int {
		v, _ := member(meta, name)
		return toInt(v)
	}
	return &artifact.Usage{
		PromptTokenCount:     read("promptTokenCount"),
		CandidatesTokenCount: read("candidatesTokenCount"),
		TotalTokenCount:      read("totalTokenCount"),
	}
}

// member reads name as a zero-argument method, else as a field or map key.
func member(v any, name string) (any, bool) {
	if out, ok := method(v, exportedName(name)); ok {
		return out, true
	}
	return field(v, name)
}

// method calls a zero-argument method returning (T) or (T, error).
func method(v any, name string) (any, bool) {
	if isNil(v) {
		return nil, false
	}
	m := reflect.ValueOf(v).MethodByName(name)
	if !m.IsValid() || m.Type().NumIn() != 0 {
		return nil, false
	}
	switch m.Type().NumOut() {
	case 1:
		return m.Call(nil)[0].Interface(), true
	case 2:
		if !m.Type().Out(1).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
			return nil, false
		}
		out := m.Call(nil)
		if !out[1].IsNil() {
			return nil, false
		}
		return out[0].Interface(), true
	}
	return nil, false
}

// field reads a map key (as given) or an exported struct field.
func field(v any, name string) (any, bool) {
	if isNil(v) {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		x, ok := m[name]
		return x, ok
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	f := rv.FieldByName(exportedName(name))
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}

func index(v any, i int) (any, bool) {
	if isNil(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if i < 0 || i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func toInt(v any) int {
	if isNil(v) {
		return 0
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int(rv.Float())
	}
	return 0
}

func exportedName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
