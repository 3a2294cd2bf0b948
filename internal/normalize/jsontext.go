package normalize

import (
	"regexp"
	"strings"
)

// outerObject returns the span from the first '{' to the last '}', or s
// unchanged when there is no such span.
func outerObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

// stripControl drops ASCII control characters except \n, \r and \t.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r <= 0x08, r == 0x0B, r == 0x0C, r >= 0x0E && r <= 0x1F, r == 0x7F:
			return -1
		}
		return r
	}, s)
}

// escapeLen returns the length of the valid JSON escape sequence starting at
// the backslash s[i], or 0 when the backslash does not start one.
func escapeLen(s string, i int) int {
	if i+1 >= len(s) {
		return 0
	}
	switch s[i+1] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 2
	case 'u':
		if i+6 > len(s) {
			return 0
		}
		for _, c := range []byte(s[i+2 : i+6]) {
			if !isHex(c) {
				return 0
			}
		}
		return 6
	}
	return 0
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// closesString reports whether the text from j, after optional whitespace,
// ends or continues with one of closers.
func closesString(s string, j int, closers string) bool {
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	if j >= len(s) {
		return true
	}
	return strings.IndexByte(closers, s[j]) >= 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// escapeStringContents escapes raw characters inside every double-quoted
// literal of a JSON-like document. Valid escapes are kept; lone backslashes,
// raw newlines, carriage returns and tabs are escaped. A quote ends the
// literal only when followed by optional whitespace and , } ] or :;
// otherwise it is content and gets escaped.
func escapeStringContents(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	inStr := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inStr {
			b.WriteByte(c)
			if c == '"' {
				inStr = true
			}
			continue
		}
		if c == '"' {
			if closesString(s, i+1, ",}]:") {
				b.WriteByte('"')
				inStr = false
			} else {
				b.WriteString(`\"`)
			}
			continue
		}
		i += writeStringByte(&b, s, i) - 1
	}
	return b.String()
}

// escapeRaw escapes a string literal's content whose bounds are already
// known, so every unescaped quote is content.
func escapeRaw(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteString(`\"`)
			continue
		}
		i += writeStringByte(&b, s, i) - 1
	}
	return b.String()
}

// writeStringByte writes the escaped form of the non-quote byte at s[i] and
// returns how many input bytes it consumed.
func writeStringByte(b *strings.Builder, s string, i int) int {
	switch c := s[i]; c {
	case '\\':
		if n := escapeLen(s, i); n > 0 {
			b.WriteString(s[i : i+n])
			return n
		}
		b.WriteString(`\\`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	default:
		b.WriteByte(c)
	}
	return 1
}

var (
	reCodeKey = regexp.MustCompile(`"code"\s*:\s*"`)
	reNextKey = regexp.MustCompile(`^\s*,\s*"[^"\\]*"\s*:`)
)

// codeSpan locates the raw content of the "code" string value. start is -1
// when there is no code key. The end quote is found by escape-aware
// scanning: a quote qualifies only when followed by optional whitespace and
// , or }. Among qualifying quotes the first one that is followed by the end
// of the document or by another key wins; failing that the first qualifying
// quote, and failing that the last '}'. ok reports whether a quote was found.
func codeSpan(s string) (start, end int, ok bool) {
	loc := reCodeKey.FindStringIndex(s)
	if loc == nil {
		return -1, -1, false
	}
	start = loc[1]
	first := -1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			if !closesString(s, i+1, ",}") {
				continue
			}
			if first < 0 {
				first = i
			}
			if endsDocument(s, i+1) || reNextKey.MatchString(s[i+1:]) {
				return start, i, true
			}
		}
	}
	if first >= 0 {
		return start, first, true
	}
	if last := strings.LastIndexByte(s, '}'); last > start {
		return start, last, false
	}
	return start, len(s), false
}

// endsDocument reports whether s[j:] is whitespace, one '}', then
// whitespace.
func endsDocument(s string, j int) bool {
	rest := strings.TrimSpace(s[j:])
	return rest == "}"
}
