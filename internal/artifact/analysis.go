package artifact

type TechStack struct {
	Frontend   string   `json:"frontend" prompt_desc:"Frontend framework from the allowed list."`
	Backend    string   `json:"backend" prompt_desc:"Backend runtime or framework from the allowed list."`
	Database   string   `json:"database" prompt_desc:"Primary datastore from the allowed list."`
	Deployment string   `json:"deployment" prompt_desc:"Hosting or deployment target from the allowed list."`
	Other      []string `json:"other" prompt_desc:"Supporting services or libraries."`
}

type TimelinePhase struct {
	Phase        string   `json:"phase"`
	Weeks        int      `json:"weeks"`
	Deliverables []string `json:"deliverables"`
}

type Timeline struct {
	TotalWeeks int             `json:"totalWeeks"`
	Phases     []TimelinePhase `json:"phases"`
}

type BudgetItem struct {
	Category    string `json:"category"`
	Percentage  int    `json:"percentage"`
	Description string `json:"description"`
}

type BudgetBreakdown struct {
	Total     string       `json:"total"`
	Breakdown []BudgetItem `json:"breakdown"`
}

// AnalysisDocument is the structured project analysis. Documents produced by
// a model may omit any field; callers treat every field as optional.
type AnalysisDocument struct {
	Title           string          `json:"title" prompt_desc:"Short project title."`
	Overview        string          `json:"overview" prompt_desc:"Two or three sentences describing the project."`
	Features        []string        `json:"features" prompt_desc:"Core features, one short phrase each."`
	TechStack       TechStack       `json:"techStack" prompt_type:"{frontend, backend, database, deployment: string, other: []string}" prompt_desc:"Recommended stack."`
	Timeline        Timeline        `json:"timeline" prompt_type:"{totalWeeks: int, phases: [{phase: string, weeks: int, deliverables: []string}]}" prompt_desc:"Delivery plan."`
	BudgetBreakdown BudgetBreakdown `json:"budgetBreakdown" prompt_type:"{total: string, breakdown: [{category: string, percentage: int, description: string}]}" prompt_desc:"Cost split; percentages sum to 100."`
	Risks           []string        `json:"risks" prompt_desc:"Main delivery risks."`
	Recommendations []string        `json:"recommendations" prompt_desc:"Actionable next steps."`
}
