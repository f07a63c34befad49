package domain

// Candidate is a scored search result that has not been downloaded yet.
type Candidate struct {
	Identity    string // source-qualified dedup key, e.g. "commons-123"
	Title       string
	ImageURL    string
	SourceURL   string
	MimeType    string
	Score       int
	Query       string
	ObjectName  string
	Description string
	Artist      string
	LicenseName string
	Credit      string
	TextBlob    string // lowercase text the score was computed from
}
