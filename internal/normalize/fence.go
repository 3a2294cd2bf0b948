package normalize

import (
	"regexp"
	"strings"
)

var (
	reLeadingFence  = regexp.MustCompile("^`{3,}[A-Za-z0-9_+.-]*[ \\t]*(?:\\r?\\n|$)")
	reTrailingFence = regexp.MustCompile("(?:\\r?\\n)?[ \\t]*`{3,}\\s*$")
	reFenceLine     = regexp.MustCompile("(?m)^[ \\t]*`{3,}[A-Za-z0-9_+.-]*[ \\t]*(?:\\r?\\n|$)")
	reFenceInline   = regexp.MustCompile("`{3,}[A-Za-z0-9_+.-]*")
)

// StripFences trims text and removes one leading and one trailing markdown
// code fence. Language tags on the opening fence are dropped.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	s = reLeadingFence.ReplaceAllString(s, "")
	s = reTrailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// stripAllFences removes fence markers anywhere in text.
func stripAllFences(text string) string {
	s := reFenceLine.ReplaceAllString(text, "")
	return reFenceInline.ReplaceAllString(s, "")
}
