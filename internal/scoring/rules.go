// Package scoring ranks search results for a site by lexical signals: how
// strongly the text describes a reconstruction-style depiction and whether it
// mentions the site at all.
package scoring

// Tier selects the acceptance threshold for a retrieval source.
type Tier int

const (
	// TierPrimary is a source with structured metadata.
	TierPrimary Tier = iota
	// TierSecondary is a source with sparse metadata (title and URL only).
	TierSecondary
)

// Bonus adds Points once when any of Terms appears in the text.
type Bonus struct {
	Terms  []string
	Points int
}

// Veto rejects text containing Term unless one of Unless also appears.
type Veto struct {
	Term       string
	Unless     []string
	StrictOnly bool
}

// Threshold is the minimum accepted score for a tier.
type Threshold struct {
	Strict  int
	Relaxed int
}

// Rules is the data that drives scoring. Thresholds and weights are tuned
// values, not derived ones.
type Rules struct {
	Stopwords      []string
	MinTokenLen    int
	Positive       []string
	PositiveWeight int
	Negative       []string
	NegativeWeight int
	TokenWeight    int
	Bonuses        []Bonus
	Strong         []string
	Visual         []string
	MinVisualHits  int
	// ContextTerm upgrades a single visual hit to a match when present.
	ContextTerm string
	Vetoes      []Veto
	Thresholds  map[Tier]Threshold
}

// DefaultRules returns the tuned rule set used for reconstruction galleries.
func DefaultRules() *Rules {
	return &Rules{
		Stopwords: []string{
			"ancient", "city", "temple", "site", "rome", "kingdom", "capital",
			"sanctuary", "palace", "churches", "mounds", "mausoleum",
		},
		MinTokenLen: 4,
		Positive: []string{
			"reconstruction", "reconstructed", "artist impression", "artist's impression",
			"restoration", "historical reconstruction", "rendering", "digital reconstruction",
			"cg", "3d model", "illustration", "drawing", "engraving", "painting",
			"depiction", "hypothetical", "imagined", "diorama", "cutaway",
		},
		PositiveWeight: 3,
		Negative: []string{
			"ruin photo", "ruins photo", "ruins", "tourist", "selfie", "today",
			"then and now", " now ", "modern", "street view", "drone",
			"aerial photograph", "panorama", "night shot", "stock photo",
			"shutterstock", "alamy", "getty", "tripadvisor", "booking.com",
			"ticket", "guided tour", "scaffold", "fiat", "automobile", "car ",
			"vehicle", "motor",
		},
		NegativeWeight: -2,
		TokenWeight:    2,
		Bonuses: []Bonus{
			{Terms: []string{"reconstruction"}, Points: 4},
			{Terms: []string{"artist impression", "artist's impression"}, Points: 3},
		},
		Strong: []string{
			"reconstruction", "reconstructed", "artist impression", "artist's impression",
			"historical reconstruction", "digital reconstruction", "hypothetical",
		},
		Visual: []string{
			"illustration", "drawing", "engraving", "painting", "rendering",
			"depiction", "diorama", "cutaway", "model",
		},
		MinVisualHits: 2,
		ContextTerm:   "ancient",
		Vetoes: []Veto{
			{Term: "modern", Unless: []string{"reconstruction"}},
			{Term: "tourist"},
			{Term: "photograph", Unless: []string{"model", "reconstruction"}, StrictOnly: true},
		},
		Thresholds: map[Tier]Threshold{
			TierPrimary:   {Strict: 8, Relaxed: 5},
			TierSecondary: {Strict: 5, Relaxed: 3},
		},
	}
}
