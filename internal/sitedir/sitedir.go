// Package sitedir reads and writes the persisted state of one site: the
// caption manifest, the run report and the numbered image files.
package sitedir

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/timmy/reconlens/internal/domain"
)

// Dir is the directory owned by one site.
type Dir struct {
	Path string
}

// Open returns the directory of slug under root. It does not touch the disk.
func Open(root, slug string) Dir {
	return Dir{Path: filepath.Join(root, slug)}
}

// Join returns the path of a file inside the directory.
func (d Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}

// Ensure creates the directory if needed.
func (d Dir) Ensure() error {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return fmt.Errorf("failed to create site dir %s: %w", d.Path, err)
	}
	return nil
}

// HasManifest reports whether a caption manifest exists.
func (d Dir) HasManifest() bool {
	_, err := os.Stat(d.Join(domain.ManifestFileName))
	return err == nil
}

// ReadCaptions loads the caption manifest.
// Parameters: none.
// Returns:
//   - []domain.CaptionRecord: records in manifest order.
//   - error: wraps domain.ErrManifestNotFound when the file is absent.
func (d Dir) ReadCaptions() ([]domain.CaptionRecord, error) {
	data, err := os.ReadFile(d.Join(domain.ManifestFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrManifestNotFound, d.Join(domain.ManifestFileName))
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var records []domain.CaptionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", d.Join(domain.ManifestFileName), err)
	}
	return records, nil
}

// WriteCaptions replaces the caption manifest.
func (d Dir) WriteCaptions(records []domain.CaptionRecord) error {
	if records == nil {
		records = []domain.CaptionRecord{}
	}
	return WriteJSON(d.Join(domain.ManifestFileName), records)
}

// ReadReport loads the latest run report.
func (d Dir) ReadReport() (domain.RunReport, error) {
	var r domain.RunReport
	data, err := os.ReadFile(d.Join(domain.ReportFileName))
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("failed to decode report: %w", err)
	}
	return r, nil
}

// WriteReport replaces the run report.
func (d Dir) WriteReport(r domain.RunReport) error {
	return WriteJSON(d.Join(domain.ReportFileName), r)
}

// WriteJSON writes v as indented JSON through a temporary file so readers
// never see a partial document.
func WriteJSON(path string, v interface{}) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
