package scoring

// Matcher binds a rule set to the tokens of one site.
type Matcher struct {
	rules  *Rules
	tokens []string
}

// NewMatcher builds a matcher for a site display name.
func NewMatcher(rules *Rules, siteName string) *Matcher {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules, tokens: rules.Tokens(siteName)}
}

// Tokens returns the site tokens.
func (m *Matcher) Tokens() []string {
	return m.tokens
}

// Rules returns the underlying rule set.
func (m *Matcher) Rules() *Rules {
	return m.rules
}

// Score scores a blob against the site tokens.
func (m *Matcher) Score(blob string) int {
	return m.rules.Score(blob, m.tokens)
}

// IsReconstructionLike classifies a blob against the site tokens.
func (m *Matcher) IsReconstructionLike(blob string) bool {
	return m.rules.IsReconstructionLike(blob, m.tokens)
}

// SiteHits counts the site tokens present in the blob.
func (m *Matcher) SiteHits(blob string) int {
	return countHits(blob, m.tokens)
}

// Accept reports whether a scored blob clears the tier threshold and the
// reconstruction classification. Vetoes are source specific and checked by
// the caller.
func (m *Matcher) Accept(blob string, score int, tier Tier, relaxed bool) bool {
	if score < m.rules.MinScore(tier, relaxed) {
		return false
	}
	if !m.IsReconstructionLike(blob) {
		return false
	}
	return true
}
