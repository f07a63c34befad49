package domain

// RunReport summarizes one acquisition run for one site.
type RunReport struct {
	RunID      string   `json:"run_id,omitempty"`
	Site       string   `json:"site"`
	Name       string   `json:"name"`
	Region     string   `json:"region,omitempty"`
	Blurb      string   `json:"blurb,omitempty"`
	Downloaded int      `json:"downloaded"`
	Target     int      `json:"target"`
	Queries    []string `json:"queries,omitempty"`
	Skipped    bool     `json:"skipped,omitempty"`
	Note       string   `json:"note,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

// Degraded reports whether the run ended in a placeholder outcome.
func (r RunReport) Degraded() bool {
	return r.Note != ""
}

// BatchReport aggregates site reports for a processed catalog range.
type BatchReport struct {
	RunID     string      `json:"run_id"`
	Start     int         `json:"start"`
	End       int         `json:"end"`
	Target    int         `json:"target"`
	Sites     []RunReport `json:"sites"`
	Timestamp int64       `json:"timestamp"`
}

// Totals returns the downloaded image count and the number of degraded sites.
func (b BatchReport) Totals() (downloaded, degraded int) {
	for _, r := range b.Sites {
		downloaded += r.Downloaded
		if r.Degraded() {
			degraded++
		}
	}
	return downloaded, degraded
}
