package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"briefforge/internal/artifact"
)

// alternateNames are component names models commonly emit instead of the
// canonical one.
var alternateNames = []string{"GeneratedComponent", "GeneratedApp", "GeneratedWebsite"}

var literalEscapes = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\"`, `"`,
)

var (
	canonical = regexp.QuoteMeta(artifact.ComponentName)

	reArrowDecl = regexp.MustCompile(`(?m)^([ \t]*)(?:export[ \t]+)?(?:const|let|var)[ \t]+` + canonical +
		`[ \t]*(?::[ \t]*[\w.<>]+[ \t]*)?=[ \t]*(?:\(([^()]*)\)|([A-Za-z_$][\w$]*))[ \t]*=>[ \t]*\{`)
	reCanonicalDecl = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+(?:default[ \t]+)?)?(?:function[ \t]+|class[ \t]+|(?:const|let|var)[ \t]+)` + canonical + `\b`)
	reDefaultTarget = regexp.MustCompile(`(?m)^[ \t]*export[ \t]+default[ \t]+(?:(?:async[ \t]+)?(?:function|class)[ \t]+([A-Za-z_$][\w$]*)|([^\n;]+))`)
	reComponentDecl = regexp.MustCompile(`(?m)^(?:export[ \t]+)?(?:` +
		`(?:async[ \t]+)?function[ \t]+([A-Z][\w$]*)` +
		`|class[ \t]+([A-Z][\w$]*)` +
		`|(?:const|let|var)[ \t]+([A-Z][\w$]*)[ \t]*(?::[^=\n]*)?=[ \t]*(?:` +
		`(?:async[ \t]+)?(?:\([^()]*\)|[A-Za-z_$][\w$]*)[ \t]*=>` +
		`|function\b` +
		`|(?:[\w$]+\.)?(?:memo|forwardRef)\())`)
	reIdent         = regexp.MustCompile(`[A-Za-z_$][\w$]*`)
	reConstantName  = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	reDefaultAnon   = regexp.MustCompile(`(?m)^([ \t]*)export[ \t]+default[ \t]+(async[ \t]+)?function[ \t]*\(`)
	reDefaultArrow  = regexp.MustCompile(`(?m)^([ \t]*)export[ \t]+default[ \t]+(\([^()]*\)|[A-Za-z_$][\w$]*)[ \t]*=>`)
	reDefaultDecl   = regexp.MustCompile(`(?m)^([ \t]*)export[ \t]+default[ \t]+((?:async[ \t]+)?function|class)\b`)
	reDefaultStmt   = regexp.MustCompile(`(?m)^[ \t]*export[ \t]+default\b[^\n]*(?:\n|$)`)
	reJSXTrailing   = regexp.MustCompile(`\{([^{}\n]*?)\s*[;,.]+\s*\}`)
)

// NormalizeComponent canonicalizes UI component source: it unwraps a
// JSON-quoted string, resolves literal escapes, strips fences, renames the
// component to the canonical name with a function declaration, leaves
// exactly one canonical default export, cleans stray punctuation inside JSX
// expressions and applies best-effort syntax repairs. Running it on its own
// output is a no-op.
func NormalizeComponent(code string) string {
	s := unquoteJSON(code)
	s = literalEscapes.Replace(s)
	s = stripAllFences(s)
	s = canonicalizeName(s)
	s = ensureDefaultExport(s)
	s = SanitizeJSX(s)
	return RepairSyntax(s)
}

func unquoteJSON(code string) string {
	t := strings.TrimSpace(code)
	if len(t) < 2 || t[0] != '"' || t[len(t)-1] != '"' {
		return code
	}
	var s string
	if err := json.Unmarshal([]byte(t), &s); err != nil {
		return code
	}
	return s
}

func canonicalizeName(s string) string {
	for _, alt := range alternateNames {
		s = renameIdent(s, alt, artifact.ComponentName)
	}
	if !reCanonicalDecl.MatchString(s) {
		// anonymous default exports become the canonical declaration
		s = reDefaultAnon.ReplaceAllString(s, "${1}${2}function "+artifact.ComponentName+"(")
		s = reDefaultArrow.ReplaceAllString(s, "${1}const "+artifact.ComponentName+" = ${2} =>")
	}
	if !reCanonicalDecl.MatchString(s) {
		if name := defaultTarget(s); name != "" {
			s = renameIdent(s, name, artifact.ComponentName)
		} else if name := firstComponent(s); name != "" {
			s = renameIdent(s, name, artifact.ComponentName)
		}
	}
	return reArrowDecl.ReplaceAllString(s, "${1}function "+artifact.ComponentName+"(${2}${3}) {")
}

// defaultTarget returns the component named by the first default export.
// For wrapped exports such as React.memo(Home) or withRouter(Home) it is the
// innermost component-like argument.
func defaultTarget(s string) string {
	m := reDefaultTarget.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		if isComponentName(m[1]) {
			return m[1]
		}
		return ""
	}
	expr := m[2]
	name := ""
	for _, loc := range reIdent.FindAllStringIndex(expr, -1) {
		id := expr[loc[0]:loc[1]]
		next := strings.TrimLeft(expr[loc[1]:], " \t")
		prev := strings.TrimRight(expr[:loc[0]], " \t")
		declared := strings.HasSuffix(prev, "function") || strings.HasSuffix(prev, "class")
		if strings.HasPrefix(next, ".") || (strings.HasPrefix(next, "(") && !declared) {
			continue
		}
		if isComponentName(id) {
			name = id
		}
	}
	return name
}

// firstComponent returns the first top-level function, class, arrow or
// memo/forwardRef declaration with a component-style name.
func firstComponent(s string) string {
	for _, m := range reComponentDecl.FindAllStringSubmatch(s, -1) {
		for _, name := range m[1:] {
			if name != "" && isComponentName(name) {
				return name
			}
		}
	}
	return ""
}

// isComponentName reports whether name is PascalCase rather than a
// SCREAMING_CASE constant.
func isComponentName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z' && !reConstantName.MatchString(name)
}

// renameIdent replaces whole-word occurrences of from, except those
// directly inside quotes such as 'Home' in setPage('Home').
func renameIdent(s, from, to string) string {
	if from == to || from == "" {
		return s
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`)
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] > 0 && isQuote(s[loc[0]-1]) || loc[1] < len(s) && isQuote(s[loc[1]]) {
			continue
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(to)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func isQuote(c byte) bool { return c == '\'' || c == '"' || c == '`' }

// ensureDefaultExport turns "export default function X" into a plain
// declaration, drops every other default-export statement and appends the
// canonical one.
func ensureDefaultExport(s string) string {
	s = reDefaultDecl.ReplaceAllString(s, "${1}${2}")
	s = reDefaultStmt.ReplaceAllString(s, "")
	return strings.TrimRight(s, " \t\r\n") + "\n\nexport default " + artifact.ComponentName + ";"
}

// SanitizeJSX removes trailing semicolons, commas and periods inside
// single-level, single-line brace expressions: {value;} => {value},
// {;} => {}.
func SanitizeJSX(s string) string {
	for {
		next := reJSXTrailing.ReplaceAllString(s, "{$1}")
		if next == s {
			return s
		}
		s = next
	}
}
