package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultDisplayName is used when nothing usable remains after stripping.
	DefaultDisplayName = "My Business"

	displayNameMaxWords = 4
	displayNameMaxChars = 40
)

var (
	reLeadIn = regexp.MustCompile(`(?i)^(?:(?:hi|hello|hey)[\s,!.]+)?(?:please\s+)?(?:` +
		`(?:(?:i|we)\s+(?:really\s+)?(?:need|want|would like|am looking for|are looking for)|i'd like|we'd like|i'm looking for|we're looking for)\s+(?:to\s+(?:build|create|make|have|get|launch|start)\s+)?` +
		`|(?:can|could)\s+you\s+(?:please\s+)?(?:build|create|make|design)\s+(?:me\s+|us\s+)?` +
		`|(?:build|create|make|design|generate)\s+(?:me\s+|us\s+)?)`)
	reArticle  = regexp.MustCompile(`(?i)^(?:an?|the|some|my|our)\s+`)
	reCategory = regexp.MustCompile(`(?i)\b(?:(?:simple|modern|new|professional|beautiful|small)\s+)*(?:(?:e-?commerce|online|web)\s+)?` +
		`(?:website|web\s?site|webshop|site|store|shop|application|app|platform|landing\s+page|web\s?page|page|portfolio|e-?commerce)\b`)
	reConnector = regexp.MustCompile(`(?i)^(?:for|about|of|to|that|which|selling|sell|sells|featuring|my|our|your|a|an|the)\s+`)
	reClauseEnd = regexp.MustCompile(`(?i)[.,;:!?\n]|\s(?:with|that|which|where|so|but)\s`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// DisplayName derives a short site name from a free-text brief. It removes
// request lead-ins ("I need a"), category nouns ("website", "store") and
// connecting words, then bounds the result in words and characters.
//
// "I need an ecommerce store for selling handmade jewelry" => "handmade jewelry".
func DisplayName(prompt string) string {
	s := strings.TrimSpace(prompt)
	s = reLeadIn.ReplaceAllString(s, "")
	s = reArticle.ReplaceAllString(s, "")
	s = reCategory.ReplaceAllString(s, " ")
	s = strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
	for {
		next := reConnector.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	if loc := reClauseEnd.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = strings.Trim(s, " \t\"'`-_*()[]{}")
	s = truncateWords(s, displayNameMaxWords, displayNameMaxChars)
	if s == "" {
		return DefaultDisplayName
	}
	return s
}

func truncateWords(s string, maxWords, maxChars int) string {
	words := strings.Fields(s)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	var b strings.Builder
	for _, w := range words {
		n := utf8.RuneCountInString(b.String())
		extra := utf8.RuneCountInString(w)
		if n > 0 {
			extra++
		}
		if n+extra > maxChars {
			if n == 0 {
				b.WriteString(string([]rune(w)[:maxChars]))
			}
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	return b.String()
}
