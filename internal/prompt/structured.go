package prompt

import (
	"bytes"
	"fmt"
	"strings"
)

// Field describes a single output field in a simple schema.
type Field struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// Example captures an optional input/output example.
type Example struct {
	Input  string
	Output string
}

// Spec defines the sections of a structured prompt. Empty sections are
// omitted from the rendered text.
type Spec struct {
	Purpose      string
	Background   string
	Input        string
	OutputFields []Field
	Constraints  []string
	Rules        []string
	Assumptions  []string
	OutputFormat string
	Examples     []Example
}

// Render writes the spec as "[SECTION]" blocks in a fixed order.
func Render(spec Spec) string {
	var buf bytes.Buffer
	writeSection(&buf, "PURPOSE", spec.Purpose)
	writeSection(&buf, "BACKGROUND", spec.Background)
	writeSection(&buf, "INPUT", spec.Input)
	writeSection(&buf, "OUTPUT", formatFields(spec.OutputFields))
	writeSection(&buf, "CONSTRAINTS", formatList(spec.Constraints))
	writeSection(&buf, "RULES", formatList(spec.Rules))
	writeSection(&buf, "ASSUMPTIONS", formatList(spec.Assumptions))
	writeSection(&buf, "OUTPUT_FORMAT", spec.OutputFormat)
	writeSection(&buf, "EXAMPLES", formatExamples(spec.Examples))
	return strings.TrimSpace(buf.String()) + "\n"
}

func formatFields(fields []Field) string {
	var buf strings.Builder
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", name, f.Type, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", name, f.Type, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatExamples(examples []Example) string {
	var buf strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&buf, "Example %d:\n", i+1)
		if strings.TrimSpace(ex.Input) != "" {
			buf.WriteString("INPUT:\n")
			buf.WriteString(strings.TrimRight(ex.Input, "\n"))
			buf.WriteString("\n")
		}
		if strings.TrimSpace(ex.Output) != "" {
			buf.WriteString("OUTPUT:\n")
			buf.WriteString(strings.TrimRight(ex.Output, "\n"))
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

// lines renders label/value pairs one per line.
func lines(pairs ...string) string {
	var buf strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&buf, "%s: %s\n", pairs[i], pairs[i+1])
	}
	return buf.String()
}
