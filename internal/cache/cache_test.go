package cache

import (
	"strings"
	"testing"
	"time"

	"briefforge/internal/artifact"
)

func TestKeys_PrefixesAndLength(t *testing.T) {
	req := artifact.GenerationRequest{
		RawPrompt: "a bakery site",
		Inputs:    artifact.Inputs{"budget": "$5k"},
		ModelID:   "pro",
	}
	cases := map[string]string{
		AnalysisKey(req):               "project_",
		WebsiteKey(req):                "website_",
		CombinedKey(req):               "combined_pro_",
		RegenerateKey("x", "y", "pro"): "regenerate_pro_",
	}
	for key, prefix := range cases {
		if !strings.HasPrefix(key, prefix) {
			t.Fatalf("key %q missing prefix %q", key, prefix)
		}
		if got := len(key) - len(prefix); got != fingerprintLen {
			t.Fatalf("key %q fingerprint length %d", key, got)
		}
	}
}

func TestKeys_ModelSensitivity(t *testing.T) {
	flash := artifact.GenerationRequest{RawPrompt: "p", Inputs: artifact.Inputs{"a": "1"}, ModelID: "flash"}
	pro := flash
	pro.ModelID = "pro"

	if CombinedKey(flash) == CombinedKey(pro) {
		t.Fatalf("combined keys must differ across models")
	}
	if AnalysisKey(flash) != AnalysisKey(pro) {
		t.Fatalf("analysis keys must ignore the model")
	}
	if WebsiteKey(flash) != WebsiteKey(pro) {
		t.Fatalf("website keys must ignore the model")
	}
}

func TestKeys_DeterministicAndInputSensitive(t *testing.T) {
	a := artifact.GenerationRequest{RawPrompt: "p", Inputs: artifact.Inputs{"a": "1", "b": []string{"x", "y"}}}
	b := artifact.GenerationRequest{RawPrompt: "p", Inputs: artifact.Inputs{"b": []string{"x", "y"}, "a": "1"}}
	if AnalysisKey(a) != AnalysisKey(b) {
		t.Fatalf("map order must not change the key")
	}
	c := artifact.GenerationRequest{RawPrompt: "p", Inputs: artifact.Inputs{"a": "2"}}
	if AnalysisKey(a) == AnalysisKey(c) {
		t.Fatalf("different inputs must change the key")
	}
	if AnalysisKey(artifact.GenerationRequest{RawPrompt: "p"}) != AnalysisKey(artifact.GenerationRequest{RawPrompt: "p", Inputs: artifact.Inputs{}}) {
		t.Fatalf("nil and empty inputs should share a key")
	}
}

func TestResults_TypedLoad(t *testing.T) {
	r := NewResults(time.Hour)
	defer r.Close()

	Store(r, "k", artifact.AnalysisResult{Result: "{}"})
	got, ok := Load[artifact.AnalysisResult](r, "k")
	if !ok || got.Result != "{}" {
		t.Fatalf("expected cached analysis, got %+v %v", got, ok)
	}
	if _, ok := Load[artifact.WebsiteResult](r, "k"); ok {
		t.Fatalf("type mismatch must miss")
	}
	st := r.Stats()
	if st.Keys != 1 || st.Hits != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
}
