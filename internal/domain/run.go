package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// RunStatus represents the outcome of a site acquisition run.
// Values include RunStatusCompleted, RunStatusSkipped, and RunStatusDegraded.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusSkipped   RunStatus = "skipped"
	RunStatusDegraded  RunStatus = "degraded"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the slice.
//   - error: non-nil if marshaling fails.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
//
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// AcquisitionRun is the ledger row recorded for every site processed by a batch.
type AcquisitionRun struct {
	ID          string      `gorm:"type:text;primaryKey" json:"id"`
	BatchID     string      `gorm:"type:text;not null;index" json:"batch_id"`
	SiteSlug    string      `gorm:"type:text;not null;index:idx_runs_site" json:"site_slug"`
	Status      RunStatus   `gorm:"type:text;default:completed" json:"status"`
	Downloaded  int         `gorm:"default:0" json:"downloaded"`
	Target      int         `gorm:"default:0" json:"target"`
	Queries     StringArray `gorm:"type:text" json:"queries"`
	Note        string      `gorm:"type:text" json:"note,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
}

// TableName returns the database table name for AcquisitionRun.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (AcquisitionRun) TableName() string {
	return "acquisition_runs"
}

// NewAcquisitionRun converts a site report into a ledger row.
func NewAcquisitionRun(id, batchID string, report RunReport, started, completed time.Time) *AcquisitionRun {
	status := RunStatusCompleted
	switch {
	case report.Degraded():
		status = RunStatusDegraded
	case report.Skipped:
		status = RunStatusSkipped
	}
	return &AcquisitionRun{
		ID:          id,
		BatchID:     batchID,
		SiteSlug:    report.Site,
		Status:      status,
		Downloaded:  report.Downloaded,
		Target:      report.Target,
		Queries:     StringArray(report.Queries),
		Note:        report.Note,
		StartedAt:   started,
		CompletedAt: completed,
	}
}
