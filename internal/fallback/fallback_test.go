package fallback

import (
	"encoding/json"
	"strings"
	"testing"

	"briefforge/internal/artifact"
	"briefforge/internal/catalog"
	"briefforge/internal/normalize"
	"briefforge/internal/prompt"
)

const jewelryBrief = "I need an ecommerce store for selling handmade jewelry"

func TestAnalysis_FixedShapeWithInterpolation(t *testing.T) {
	doc := Analysis("A booking site for my yoga studio", artifact.Inputs{
		artifact.InputProjectType: "wellness studio",
		artifact.InputTimeline:    "12 weeks",
		artifact.InputBudget:      "$8,000",
	})

	if doc.Title != "Wellness Studio Project" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if !strings.Contains(doc.Overview, "wellness studio") || !strings.Contains(doc.Overview, "A booking site for my yoga studio") {
		t.Fatalf("overview should mention type and brief: %q", doc.Overview)
	}
	if doc.BudgetBreakdown.Total != "$8,000" {
		t.Fatalf("unexpected budget total %q", doc.BudgetBreakdown.Total)
	}
	sum := 0
	for _, item := range doc.BudgetBreakdown.Breakdown {
		sum += item.Percentage
	}
	if sum != 100 {
		t.Fatalf("budget percentages sum to %d", sum)
	}
	if doc.Timeline.TotalWeeks != 12 {
		t.Fatalf("expected 12 weeks, got %d", doc.Timeline.TotalWeeks)
	}
	weeks := 0
	for _, p := range doc.Timeline.Phases {
		if p.Weeks < 1 {
			t.Fatalf("phase %q has %d weeks", p.Phase, p.Weeks)
		}
		weeks += p.Weeks
	}
	if weeks != 12 {
		t.Fatalf("phases sum to %d weeks", weeks)
	}
	stack := catalog.SupportedStack()
	if !contains(stack.Frontend, doc.TechStack.Frontend) || !contains(stack.Database, doc.TechStack.Database) {
		t.Fatalf("tech stack outside the allow list: %+v", doc.TechStack)
	}
}

func TestAnalysis_OnlyTimelineVariesWithInputs(t *testing.T) {
	a := Analysis("brief", artifact.Inputs{artifact.InputTimeline: "4 weeks"})
	b := Analysis("brief", artifact.Inputs{artifact.InputTimeline: "3 months"})
	if a.Timeline.TotalWeeks != 4 || b.Timeline.TotalWeeks != 12 {
		t.Fatalf("unexpected weeks %d %d", a.Timeline.TotalWeeks, b.Timeline.TotalWeeks)
	}
	if strings.Join(a.Risks, "|") != strings.Join(b.Risks, "|") {
		t.Fatalf("risks should be fixed")
	}
	if a.BudgetBreakdown.Total != "To be determined" {
		t.Fatalf("unexpected default budget %q", a.BudgetBreakdown.Total)
	}
}

func TestWeeks(t *testing.T) {
	cases := map[string]int{
		"":              8,
		"asap":          8,
		"6 weeks":       6,
		"2-3 months":    8,
		"10":            10,
		"1 month":       4,
		"4-6 wks":       4,
		"1000 weeks":    maxWeeks,
		"about 5 weeks": 5,
	}
	for in, want := range cases {
		if got := Weeks(in); got != want {
			t.Fatalf("Weeks(%q)=%d want %d", in, got, want)
		}
	}
}

func TestTimeline_SmallTotals(t *testing.T) {
	for total := 1; total <= 10; total++ {
		tl := timeline(total)
		sum := 0
		for _, p := range tl.Phases {
			if p.Weeks < 1 {
				t.Fatalf("total %d: phase %q has %d weeks", total, p.Phase, p.Weeks)
			}
			sum += p.Weeks
		}
		if sum != tl.TotalWeeks {
			t.Fatalf("total %d: phases sum %d != %d", total, sum, tl.TotalWeeks)
		}
	}
}

func TestAnalysisJSON_IsValid(t *testing.T) {
	raw := AnalysisJSON("brief <with> & symbols", nil)
	var doc artifact.AnalysisDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !strings.Contains(doc.Overview, "brief <with> & symbols") {
		t.Fatalf("overview lost the brief: %q", doc.Overview)
	}
}

func TestWebsite_ComponentContract(t *testing.T) {
	code := Website(jewelryBrief)

	if !strings.Contains(code, "function App()") {
		t.Fatalf("missing canonical declaration")
	}
	if strings.Count(code, "export default") != 1 || !strings.HasSuffix(strings.TrimSpace(code), "export default App;") {
		t.Fatalf("expected exactly one trailing default export")
	}
	if !normalize.Compiles(code) {
		t.Fatalf("fallback component does not compile:\n%s", code)
	}
	if got := normalize.SanitizeImages(code); got != code {
		t.Fatalf("fallback images must already be allowed")
	}
	if !strings.Contains(code, `"#ca8a04"`) {
		t.Fatalf("jewelry brief should use the gold accent")
	}
	if strings.Contains(code, "bg-gray-950") {
		t.Fatalf("light theme expected")
	}
}

func TestWebsite_DarkTheme(t *testing.T) {
	code := Website("A dark neon site for my gaming cafe")
	if !strings.Contains(code, "bg-gray-950") {
		t.Fatalf("dark theme expected")
	}
}

func TestWebsite_NameIsQuoted(t *testing.T) {
	code := Website(`Build a site for "Bob's {Tacos}" </div>`)
	if !normalize.Compiles(code) {
		t.Fatalf("hostile name broke the component:\n%s", code)
	}
}

// The mock component and the website prompt must agree on the name.
func TestWebsite_DisplayNameMatchesPrompt(t *testing.T) {
	code := Website(jewelryBrief)
	p := prompt.BuildWebsitePrompt(jewelryBrief, nil)

	if !strings.Contains(code, `"handmade jewelry"`) {
		t.Fatalf("fallback lost the display name")
	}
	if !strings.Contains(p, "handmade jewelry") {
		t.Fatalf("prompt lost the display name")
	}
	if strings.Contains(code, "ecommerce store for selling") {
		t.Fatalf("lead-in leaked into the component")
	}
}

func TestCombined(t *testing.T) {
	p := Combined(jewelryBrief, artifact.Inputs{artifact.InputTimeline: "6 weeks"})
	doc, ok := p.Document()
	if !ok {
		t.Fatalf("combined analysis should decode")
	}
	if doc.Timeline.TotalWeeks != 6 {
		t.Fatalf("unexpected weeks %d", doc.Timeline.TotalWeeks)
	}
	if p.Code != Website(jewelryBrief) {
		t.Fatalf("combined code should match Website")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
