package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/gallery"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/sitedir"
)

const stagePrefix = "tmp-"

// ParseIndices parses a removal spec such as "3,8,14-17". Ranges may be
// written in either direction. Empty parts are ignored.
// Parameters:
//   - spec: comma separated indices and inclusive ranges.
//
// Returns:
//   - map[int]struct{}: the set of indices.
//   - error: wraps domain.ErrInvalidIndexSpec for non-numeric or non-positive parts.
func ParseIndices(spec string) (map[int]struct{}, error) {
	out := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := parseIndex(lo)
		if err != nil {
			return nil, err
		}
		b := a
		if isRange {
			if b, err = parseIndex(hi); err != nil {
				return nil, err
			}
		}
		if a > b {
			a, b = b, a
		}
		for i := a; i <= b; i++ {
			out[i] = struct{}{}
		}
	}
	return out, nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidIndexSpec, s)
	}
	return n, nil
}

// SortedIndices returns the set in ascending order.
func SortedIndices(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// CurateResult summarizes a curation.
type CurateResult struct {
	Records []domain.CaptionRecord
	Removed int // records removed on request
	Missing int // kept records dropped because their file was gone
}

// Curator removes gallery images by index and renumbers the rest. Curations
// of the same site are serialized; different sites run in parallel.
type Curator struct {
	logger *logger.Logger
	locks  sync.Map // slug -> *sync.Mutex
}

// NewCurator creates a curator.
func NewCurator(log *logger.Logger) *Curator {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Curator{logger: log}
}

// stagedRecord is a kept record whose file sits under its temporary name.
type stagedRecord struct {
	rec  domain.CaptionRecord
	temp string
	ext  string
}

// Curate deletes the files of the removed indices, compacts the remaining
// records to 1..N and rewrites the manifest and gallery page. Files move
// through temporary names first so no rename lands on a file that is still
// waiting to move.
// Parameters:
//   - ctx: context carrying the logger.
//   - root: output root.
//   - site: catalog site to curate.
//   - remove: indices to discard.
//
// Returns:
//   - *CurateResult: renumbered records and counts.
//   - error: wraps domain.ErrManifestNotFound when the site has no manifest.
func (c *Curator) Curate(ctx context.Context, root string, site domain.Site, remove map[int]struct{}) (*CurateResult, error) {
	unlock := c.lock(site.Slug)
	defer unlock()

	dir := sitedir.Open(root, site.Slug)
	records, err := dir.ReadCaptions()
	if err != nil {
		return nil, err
	}

	result := &CurateResult{}
	staged, err := c.stage(dir, records, remove, result)
	if err != nil {
		return nil, err
	}

	renumbered, err := renumber(dir, staged)
	if err != nil {
		return nil, err
	}
	result.Records = renumbered

	if err := dir.WriteCaptions(renumbered); err != nil {
		return nil, err
	}
	if err := gallery.WriteSite(dir.Path, site, renumbered); err != nil {
		return nil, err
	}

	c.log(ctx).WithFields(logger.Fields{
		logger.FieldSite:  site.Slug,
		"requested":       SortedIndices(remove),
		"removed":         result.Removed,
		"missing":         result.Missing,
		logger.FieldCount: len(renumbered),
	}).Info("Site curated")
	return result, nil
}

// lock holds the site's mutex until the returned func is called.
func (c *Curator) lock(slug string) func() {
	v, _ := c.locks.LoadOrStore(slug, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (c *Curator) log(ctx context.Context) *logger.Logger {
	if l, ok := logger.Lookup(ctx); ok {
		return l
	}
	return c.logger
}

// stage deletes removed files and moves kept files to temporary names.
func (c *Curator) stage(dir sitedir.Dir, records []domain.CaptionRecord, remove map[int]struct{}, result *CurateResult) ([]stagedRecord, error) {
	staged := make([]stagedRecord, 0, len(records))
	for _, rec := range records {
		path := dir.Join(rec.File)
		if _, drop := remove[rec.Index]; drop {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to delete %s: %w", path, err)
			}
			result.Removed++
			continue
		}
		if _, err := os.Stat(path); err != nil {
			result.Missing++
			continue
		}
		temp := stagePrefix + rec.File
		if err := os.Rename(path, dir.Join(temp)); err != nil {
			return nil, fmt.Errorf("failed to stage %s: %w", rec.File, err)
		}
		staged = append(staged, stagedRecord{rec: rec, temp: temp, ext: filepath.Ext(rec.File)})
	}
	return staged, nil
}

// renumber moves staged files to their final sequential names.
func renumber(dir sitedir.Dir, staged []stagedRecord) ([]domain.CaptionRecord, error) {
	out := make([]domain.CaptionRecord, 0, len(staged))
	for _, st := range staged {
		index := len(out) + 1
		name := domain.SequentialName(index, st.ext)
		if err := os.Rename(dir.Join(st.temp), dir.Join(name)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to rename %s: %w", st.temp, err)
		}
		rec := st.rec
		rec.Index = index
		rec.File = name
		out = append(out, rec)
	}
	return out, nil
}
