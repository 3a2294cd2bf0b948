package prompt

import (
	"fmt"
	"strings"

	"briefforge/internal/artifact"
	"briefforge/internal/catalog"
)

const notSpecified = "Not specified"

var analysisFields = MustFieldsFromStruct(artifact.AnalysisDocument{})

var combinedFields = []Field{
	{Name: "analysis", Type: "object", Required: true, Description: "Project analysis with the fields listed in [BACKGROUND]."},
	{Name: "code", Type: "string", Required: true, Description: "Complete component source code encoded as one JSON string."},
}

// design is the visual plan derived from a brief.
type design struct {
	name     string
	template catalog.Template
	colors   catalog.ColorScheme
	style    string
}

func deriveDesign(rawPrompt string, inputs artifact.Inputs) design {
	typ := catalog.Classify(inputs.String(artifact.InputProjectType))
	if typ == catalog.TemplateBusiness {
		typ = catalog.Classify(rawPrompt)
	}
	return design{
		name:     catalog.DisplayName(rawPrompt),
		template: catalog.GetTemplate(typ),
		colors:   catalog.ColorSchemeFor(rawPrompt),
		style:    catalog.StyleFor(rawPrompt),
	}
}

// BuildAnalysisPrompt asks for an AnalysisDocument as strict JSON. The brief
// is interpolated verbatim.
func BuildAnalysisPrompt(rawPrompt string, inputs artifact.Inputs) string {
	spec := Spec{
		Purpose:      "Analyze a client's project brief and produce a delivery-ready project analysis.",
		Background:   "You are a senior technical consultant at a web development agency. Estimates must be realistic for a small team.",
		Input:        briefInput(rawPrompt, inputs),
		OutputFields: analysisFields,
		Constraints:  stackConstraints(),
		Rules:        analysisRules(),
		OutputFormat: "A single JSON object with exactly the keys listed in [OUTPUT].",
	}
	return Render(ApplyPresets(spec, PresetStrictJSON()))
}

// BuildWebsitePrompt asks for a single component implementing the site. The
// brief itself is not embedded; only the name, niche and theme derived from
// it are.
func BuildWebsitePrompt(rawPrompt string, inputs artifact.Inputs) string {
	d := deriveDesign(rawPrompt, inputs)
	spec := Spec{
		Purpose:      fmt.Sprintf("Build a complete multi-page website for \"%s\" as a single React component.", d.name),
		Background:   "The component is rendered in a live preview sandbox with React and Tailwind CSS available.",
		Input:        designInput(d, inputs),
		Rules:        websiteRules(d),
		OutputFormat: "Return only the component source code. No markdown fences and no explanations.",
	}
	return Render(ApplyPresets(spec, PresetComponentContract(artifact.ComponentName, artifact.ImageHosts)))
}

// BuildCombinedPrompt asks for {"analysis": {...}, "code": "..."} in one
// response.
func BuildCombinedPrompt(rawPrompt string, inputs artifact.Inputs) string {
	d := deriveDesign(rawPrompt, inputs)
	spec := Spec{
		Purpose:      fmt.Sprintf("Produce a project analysis and a matching website component for \"%s\" in one JSON object.", d.name),
		Background:   "The analysis object has these fields:\n" + formatFields(analysisFields),
		Input:        briefInput(rawPrompt, inputs) + "\n" + designInput(d, inputs),
		OutputFields: combinedFields,
		Constraints:  stackConstraints(),
		Rules:        append(analysisRules(), websiteRules(d)...),
		OutputFormat: `A single JSON object {"analysis": {...}, "code": "..."} and nothing else.`,
		Examples: []Example{{
			Output: `{"analysis": {"title": "Example", "overview": "..."}, "code": "function App() {\n  const [page, setPage] = useState('Home');\n  return <div className=\"min-h-screen\">{page}</div>;\n}\n\nexport default App;"}`,
		}},
	}
	spec = ApplyPresets(spec,
		PresetStrictJSON(),
		PresetJSONStringEscaping(),
		PresetComponentContract(artifact.ComponentName, artifact.ImageHosts),
	)
	return Render(spec)
}

// BuildRegeneratePrompt asks for a visual restyle of existing code without
// touching its content or structure.
func BuildRegeneratePrompt(existingCode, modifications string) string {
	spec := Spec{
		Purpose: "Restyle an existing React component according to the requested visual changes.",
		Input: lines("Requested changes", orDefault(modifications)) +
			"\nExisting component:\n" + existingCode,
		Rules: []string{
			"Change only presentation: Tailwind classes, colors, spacing, typography, and visual effects.",
			"Do not add, remove, rename, or reorder pages, sections, or text content.",
			"Keep all state, event handlers, and navigation logic unchanged.",
		},
		OutputFormat: "Return only the full updated component source code. No markdown fences and no explanations.",
	}
	return Render(ApplyPresets(spec, PresetComponentContract(artifact.ComponentName, artifact.ImageHosts)))
}

func briefInput(rawPrompt string, inputs artifact.Inputs) string {
	return lines(
		"Project description", rawPrompt,
		"Budget", orDefault(inputs.String(artifact.InputBudget)),
		"Timeline", orDefault(inputs.String(artifact.InputTimeline)),
		"Project type", orDefault(inputs.String(artifact.InputProjectType)),
		"Technology preference", orDefault(inputs.String(artifact.InputTechStack)),
		"Key features", orDefault(inputs.String(artifact.InputFeatures)),
		"Target audience", orDefault(inputs.String(artifact.InputAudience)),
	)
}

func designInput(d design, inputs artifact.Inputs) string {
	var pages strings.Builder
	for _, p := range d.template.Pages {
		fmt.Fprintf(&pages, "\n- %s: %s", p.Name, strings.Join(p.Sections, "; "))
	}
	out := lines(
		"Site name", d.name,
		"Site type", string(d.template.Type),
		"Visual style", d.style,
		"Primary color", d.colors.Primary,
		"Secondary color", d.colors.Secondary,
		"Navigation", strings.Join(d.template.NavPages, ", "),
	)
	out += "Pages:" + pages.String() + "\n"
	if f := inputs.String(artifact.InputFeatures); f != "" {
		out += lines("Requested features", f)
	}
	return out
}

func stackConstraints() []string {
	s := catalog.SupportedStack()
	return []string{
		"techStack.frontend must be one of: " + strings.Join(s.Frontend, ", ") + ".",
		"techStack.backend must be one of: " + strings.Join(s.Backend, ", ") + ".",
		"techStack.database must be one of: " + strings.Join(s.Database, ", ") + ".",
		"techStack.deployment must be one of: " + strings.Join(s.Deployment, ", ") + ".",
		"techStack.other may only contain: " + strings.Join(s.Other, ", ") + ".",
	}
}

func analysisRules() []string {
	return []string{
		"timeline.totalWeeks equals the sum of timeline.phases[].weeks.",
		"If the client stated a timeline or budget, plan within it.",
		"budgetBreakdown.breakdown percentages sum to 100.",
	}
}

func websiteRules(d design) []string {
	rules := []string{
		fmt.Sprintf("Use %s as the primary color and %s as the secondary color.", d.colors.Primary, d.colors.Secondary),
		fmt.Sprintf("Implement every page listed in Pages and show %s in the navigation bar.", strings.Join(d.template.NavPages, ", ")),
		"Include a responsive navigation bar and a footer on every page.",
	}
	if d.template.Type == catalog.TemplateEcommerce {
		rules = append(rules,
			"Keep the cart in component state; Add to cart buttons update it and the navigation shows the item count.",
			"Show at least six sample products with name, price, and image.",
		)
	}
	return rules
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
