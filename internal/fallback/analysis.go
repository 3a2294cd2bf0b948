// Package fallback produces deterministic analysis documents and website
// components without calling a model. Every result it builds is a mock.
package fallback

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"briefforge/internal/artifact"
)

const (
	defaultProjectType = "web development"
	defaultWeeks       = 8
	maxWeeks           = 104
	briefExcerptRunes  = 100
)

var (
	reWeeks  = regexp.MustCompile(`(?i)(\d+)\s*(?:-\s*\d+\s*)?(week|wk|month|mo)`)
	reNumber = regexp.MustCompile(`\d+`)
)

// phase shares of the total timeline; the last phase absorbs rounding.
var phasePlan = []struct {
	name         string
	share        float64
	deliverables []string
}{
	{"Discovery & Design", 0.25, []string{"Requirements document", "Wireframes", "Visual design"}},
	{"Development", 0.5, []string{"Frontend implementation", "Backend API", "Content integration"}},
	{"Testing & Launch", 0.25, []string{"QA pass", "Performance tuning", "Production deployment"}},
}

// Analysis builds the mock analysis document for a brief. Prose fields
// mention the project type and an excerpt of the brief; only the timeline
// length depends on the inputs.
func Analysis(rawPrompt string, inputs artifact.Inputs) artifact.AnalysisDocument {
	projectType := inputs.String(artifact.InputProjectType)
	if projectType == "" {
		projectType = defaultProjectType
	}
	budget := inputs.String(artifact.InputBudget)
	if budget == "" {
		budget = "To be determined"
	}

	return artifact.AnalysisDocument{
		Title:    titleCase(projectType) + " Project",
		Overview: "A " + projectType + " project based on the brief: \"" + excerpt(rawPrompt) + "\". This plan outlines a practical scope, stack and schedule for a small delivery team.",
		Features: []string{
			"Responsive design for mobile and desktop",
			"Content management for key pages",
			"Contact and lead capture forms",
			"Search engine optimization basics",
			"Analytics integration",
		},
		TechStack: artifact.TechStack{
			Frontend:   "React",
			Backend:    "Node.js",
			Database:   "PostgreSQL",
			Deployment: "Vercel",
			Other:      []string{"Tailwind CSS", "Stripe"},
		},
		Timeline: timeline(Weeks(inputs.String(artifact.InputTimeline))),
		BudgetBreakdown: artifact.BudgetBreakdown{
			Total: budget,
			Breakdown: []artifact.BudgetItem{
				{Category: "Design", Percentage: 20, Description: "UX research, wireframes and visual design"},
				{Category: "Development", Percentage: 50, Description: "Frontend and backend implementation"},
				{Category: "Testing", Percentage: 15, Description: "Quality assurance and bug fixing"},
				{Category: "Deployment & Support", Percentage: 15, Description: "Launch, hosting setup and early support"},
			},
		},
		Risks: []string{
			"Scope creep from late requirement changes",
			"Delays in receiving content and assets",
			"Third-party integration issues",
		},
		Recommendations: []string{
			"Agree on a prioritized feature list before development starts",
			"Schedule weekly progress reviews",
			"Launch with a minimum viable feature set and iterate",
		},
	}
}

// AnalysisJSON is Analysis encoded as JSON text.
func AnalysisJSON(rawPrompt string, inputs artifact.Inputs) string {
	b, err := marshal(Analysis(rawPrompt, inputs))
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Weeks reads a timeline answer such as "6 weeks", "3 months" or "10".
// Months count as four weeks. Unreadable answers yield the default of 8.
func Weeks(answer string) int {
	n := 0
	if m := reWeeks.FindStringSubmatch(answer); m != nil {
		n, _ = strconv.Atoi(m[1])
		if strings.HasPrefix(strings.ToLower(m[2]), "mo") {
			n *= 4
		}
	} else if m := reNumber.FindString(answer); m != "" {
		n, _ = strconv.Atoi(m)
	}
	if n <= 0 {
		return defaultWeeks
	}
	if n > maxWeeks {
		return maxWeeks
	}
	return n
}

func timeline(total int) artifact.Timeline {
	if total < len(phasePlan) {
		total = len(phasePlan)
	}
	phases := make([]artifact.TimelinePhase, 0, len(phasePlan))
	used := 0
	for i, p := range phasePlan {
		weeks := int(float64(total)*p.share + 0.5)
		if weeks < 1 {
			weeks = 1
		}
		if limit := total - used - (len(phasePlan) - 1 - i); weeks > limit {
			weeks = limit
		}
		if i == len(phasePlan)-1 {
			weeks = total - used
		}
		used += weeks
		phases = append(phases, artifact.TimelinePhase{
			Phase:        p.name,
			Weeks:        weeks,
			Deliverables: append([]string(nil), p.deliverables...),
		})
	}
	return artifact.Timeline{TotalWeeks: total, Phases: phases}
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= briefExcerptRunes {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:briefExcerptRunes])) + "..."
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
