package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"briefforge/internal/artifact"
)

const (
	placeholderTextMax  = 30
	placeholderFallback = "Image"
)

var (
	reImgOpen = regexp.MustCompile(`(?i)<img\b`)
	reImgSrc  = regexp.MustCompile(`(?is)\ssrc\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`$]*)`" + `)\s*\})`)
	reImgAlt  = regexp.MustCompile(`(?is)\salt\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*(?:"([^"]*)"|'([^']*)')\s*\})`)
)

// SanitizeImages rewrites every static <img> source whose host is not
// allow-listed to a placeholder URL carrying the element's alt text.
// Dynamic sources such as src={item.image} are left alone.
func SanitizeImages(code string) string {
	var b strings.Builder
	last := 0
	for _, loc := range reImgOpen.FindAllStringIndex(code, -1) {
		if loc[0] < last {
			continue
		}
		end := tagEnd(code, loc[1])
		if end < 0 {
			break
		}
		b.WriteString(code[last:loc[0]])
		b.WriteString(sanitizeImgTag(code[loc[0]:end]))
		last = end
	}
	if last == 0 {
		return code
	}
	b.WriteString(code[last:])
	return b.String()
}

func sanitizeImgTag(tag string) string {
	loc := reImgSrc.FindStringSubmatchIndex(tag)
	if loc == nil {
		return tag
	}
	vs, ve := firstGroup(loc)
	if vs < 0 || allowedImage(tag[vs:ve]) {
		return tag
	}
	u := PlaceholderURL(altText(tag))
	if vs > 0 && tag[vs-1] == '\'' {
		u = strings.ReplaceAll(u, "'", "%27")
	}
	return tag[:vs] + u + tag[ve:]
}

// tagEnd returns the index just past the '>' closing the JSX tag whose
// attributes start at i, or -1. A '>' inside a {...} expression or a quoted
// attribute value, such as the one in onLoad={() => f()}, does not close it.
func tagEnd(s string, i int) int {
	depth := 0
	var quote byte
	for j := i; j < len(s); j++ {
		c := s[j]
		if quote != 0 {
			if c == '\\' && depth > 0 {
				j++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '`':
			if depth > 0 {
				quote = c
			}
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				return j + 1
			}
		}
	}
	return -1
}

// PlaceholderURL builds the placeholder image URL for alt.
func PlaceholderURL(alt string) string {
	text := strings.TrimSpace(alt)
	if r := []rune(text); len(r) > placeholderTextMax {
		text = strings.TrimSpace(string(r[:placeholderTextMax]))
	}
	if text == "" {
		text = placeholderFallback
	}
	return artifact.PlaceholderImageBase + encodeComponent(text)
}

func allowedImage(src string) bool {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range artifact.ImageHosts {
		if host == h {
			return true
		}
	}
	return false
}

func altText(tag string) string {
	m := reImgAlt.FindStringSubmatch(tag)
	for i := 1; i < len(m); i++ {
		if m[i] != "" {
			return m[i]
		}
	}
	return ""
}

// firstGroup returns the bounds of the first participating capture group.
func firstGroup(loc []int) (int, int) {
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] >= 0 {
			return loc[i], loc[i+1]
		}
	}
	return -1, -1
}

// uriUnreserved undoes url.QueryEscape for the characters
// encodeURIComponent leaves as they are.
var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s the way encodeURIComponent does.
func encodeComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}
