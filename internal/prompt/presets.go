package prompt

// Preset holds reusable constraints and rules.
type Preset struct {
	Constraints []string
	Rules       []string
}

// ApplyPresets prepends preset constraints/rules to spec.
func ApplyPresets(spec Spec, presets ...Preset) Spec {
	if len(presets) == 0 {
		return spec
	}
	var merged Preset
	for _, p := range presets {
		merged.Constraints = append(merged.Constraints, p.Constraints...)
		merged.Rules = append(merged.Rules, p.Rules...)
	}
	spec.Constraints = append(merged.Constraints, spec.Constraints...)
	spec.Rules = append(merged.Rules, spec.Rules...)
	return spec
}

// PresetStrictJSON enforces JSON-only output.
func PresetStrictJSON() Preset {
	return Preset{
		Constraints: []string{
			"Return strict JSON only.",
			"Match the schema exactly; no extra fields.",
			"No markdown, comments, or trailing commas.",
		},
	}
}

// PresetJSONStringEscaping spells out how source code must be embedded in a
// JSON string value.
func PresetJSONStringEscaping() Preset {
	return Preset{
		Rules: []string{
			`Inside JSON string values, write every newline as \n (backslash + n), never as a raw line break.`,
			`Escape every double quote inside a string value as \".`,
			`Escape every backslash inside a string value as \\.`,
			"Prefer single quotes for string literals inside code so fewer escapes are needed.",
		},
	}
}

// PresetComponentContract fixes the shape of generated UI components.
func PresetComponentContract(name string, hosts []string) Preset {
	hostList := ""
	for i, h := range hosts {
		if i > 0 {
			hostList += " or "
		}
		hostList += "https://" + h
	}
	return Preset{
		Constraints: []string{
			"Write one self-contained React function component in a single file.",
			"Declare it exactly as `function " + name + "() { ... }`; do not use arrow-function components.",
			"End the file with exactly one `export default " + name + ";`.",
			"Only import from 'react'. Style with Tailwind CSS utility classes.",
			"Images must use " + hostList + " URLs only.",
		},
		Rules: []string{
			"Navigation must switch pages with component state (useState), never with href=\"#...\" links or a router.",
			"Inside JSX braces write bare expressions only: no trailing semicolons, commas, or periods.",
			"Do not leave placeholders such as TODO, ..., or {{name}} in the output.",
		},
	}
}
