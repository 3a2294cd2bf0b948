package llmclient

import (
	"context"
	"errors"
	"fmt"
	"testing"

	genai "google.golang.org/genai"
)

type textResp struct{ s string }

func (r textResp) Text() string { return r.s }

type fieldResp struct {
	Text          string
	UsageMetadata map[string]any
}

type wrapper struct{ inner any }

func (w *wrapper) Response() any { return w.inner }

func TestExtract_Shapes(t *testing.T) {
	cases := []struct {
		name string
		resp any
		want string
	}{
		{"accessor", textResp{s: "A"}, "A"},
		{"struct field", fieldResp{Text: "B"}, "B"},
		{"map field", map[string]any{"text": "C"}, "C"},
		{"nested method", &wrapper{inner: textResp{s: "D"}}, "D"},
		{"nested map", map[string]any{"response": map[string]any{"text": "E"}}, "E"},
		{"candidates", map[string]any{"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{
				map[string]any{"text": "F1"}, map[string]any{"text": "F2"},
			}}},
		}}, "F1F2"},
		{"genai", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "G"}}}},
		}}, "G"},
	}
	for _, tc := range cases {
		got, err := Extract(tc.resp)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got.Text != tc.want {
			t.Fatalf("%s: got=%q want=%q", tc.name, got.Text, tc.want)
		}
	}
}

func TestExtract_AccessorBeforeField(t *testing.T) {
	resp := map[string]any{
		"text":       "field",
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": "deep"}}}}},
	}
	got, err := Extract(resp)
	if err != nil || got.Text != "field" {
		t.Fatalf("got=%q err=%v", got.Text, err)
	}
}

func TestExtract_Usage(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "x"}}}}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
			TotalTokenCount:      15,
		},
	}
	got, err := Extract(resp)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got.Usage == nil || got.Usage.PromptTokenCount != 10 || got.Usage.CandidatesTokenCount != 5 || got.Usage.TotalTokenCount != 15 {
		t.Fatalf("usage: got=%+v", got.Usage)
	}

	m, err := Extract(fieldResp{Text: "y", UsageMetadata: map[string]any{"promptTokenCount": 3.0, "totalTokenCount": 4}})
	if err != nil || m.Usage == nil || m.Usage.PromptTokenCount != 3 || m.Usage.TotalTokenCount != 4 {
		t.Fatalf("map usage: got=%+v err=%v", m.Usage, err)
	}

	none, _ := Extract(textResp{s: "z"})
	if none.Usage != nil {
		t.Fatalf("expected nil usage, got=%+v", none.Usage)
	}
}

func TestExtract_UnknownShape(t *testing.T) {
	for _, resp := range []any{nil, 42, map[string]any{"foo": "bar"}, textResp{s: "  "}, (*genai.GenerateContentResponse)(nil)} {
		if _, err := Extract(resp); !errors.Is(err, ErrResponseShape) {
			t.Fatalf("%#v: expected ErrResponseShape, got %v", resp, err)
		}
	}
}

func TestIsRateLimited(t *testing.T) {
	limited := []error{
		errors.New("googleapi: Error 429: Too Many Requests"),
		errors.New("rpc error: RESOURCE_EXHAUSTED"),
		&StatusError{Code: 429},
		&StatusError{Code: 500, Err: &StatusError{Status: "RESOURCE_EXHAUSTED"}},
		genai.APIError{Code: 429, Message: "quota"},
		fmt.Errorf("call: %w", genai.APIError{Status: "RESOURCE_EXHAUSTED"}),
		errors.Join(errors.New("first"), &StatusError{Code: 429}),
	}
	for _, err := range limited {
		if !IsRateLimited(err) {
			t.Fatalf("expected rate limited: %v", err)
		}
	}
	notLimited := []error{nil, errors.New("boom"), &StatusError{Code: 500, Status: "INTERNAL"}, genai.APIError{Code: 403}}
	for _, err := range notLimited {
		if IsRateLimited(err) {
			t.Fatalf("unexpected rate limited: %v", err)
		}
	}
}

func TestDiagnose(t *testing.T) {
	cases := []struct {
		err  error
		want Category
	}{
		{ErrNotConfigured, CategoryConfig},
		{genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}, CategoryAuth},
		{&StatusError{Code: 404, Status: "NOT_FOUND"}, CategoryNotFound},
		{&StatusError{Code: 429}, CategoryQuota},
		{errors.New("Quota exceeded for aiplatform"), CategoryQuota},
		{errors.New("boom"), CategoryUnknown},
	}
	for _, tc := range cases {
		if got := Diagnose(tc.err); got != tc.want {
			t.Fatalf("Diagnose(%v): got=%s want=%s", tc.err, got, tc.want)
		}
	}
}

func TestConnectGemini_RequiresProject(t *testing.T) {
	_, err := ConnectGemini(context.Background(), ConnectOptions{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
