package scoring

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	wordRe          = regexp.MustCompile(`[a-z0-9]+`)
)

// StripQualifier removes parenthetical qualifiers such as "(Rome)".
func StripQualifier(name string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(name, ""))
}

// Tokens returns the significant lowercase tokens of a site name in first
// occurrence order, without duplicates.
func (r *Rules) Tokens(name string) []string {
	stop := make(map[string]struct{}, len(r.Stopwords))
	for _, w := range r.Stopwords {
		stop[w] = struct{}{}
	}

	lowered := parentheticalRe.ReplaceAllString(strings.ToLower(name), "")
	seen := make(map[string]struct{})
	tokens := []string{}
	for _, tok := range wordRe.FindAllString(lowered, -1) {
		if len(tok) < r.MinTokenLen {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}
