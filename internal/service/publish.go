package service

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/timmy/reconlens/internal/gallery"
	"github.com/timmy/reconlens/internal/logger"
	"github.com/timmy/reconlens/internal/storage"
)

// PublishStats counts the objects touched by one mirror pass.
type PublishStats struct {
	Uploaded int
	Deleted  int
}

// Publisher mirrors site directories into object storage under
// <prefix>/<slug>/.
type Publisher struct {
	store  storage.ObjectStorage
	prefix string
}

// NewPublisher creates a publisher.
// Parameters:
//   - store: destination bucket.
//   - prefix: key prefix; empty publishes at the bucket root.
//
// Returns:
//   - *Publisher: initialized publisher.
func NewPublisher(store storage.ObjectStorage, prefix string) *Publisher {
	return &Publisher{store: store, prefix: strings.Trim(prefix, "/")}
}

// key joins the prefix with slash separated parts.
func (p *Publisher) key(parts ...string) string {
	if p.prefix != "" {
		parts = append([]string{p.prefix}, parts...)
	}
	return path.Join(parts...)
}

// SiteURL returns the public URL of a site gallery page.
func (p *Publisher) SiteURL(slug string) string {
	return p.store.GetURL(p.key(slug, "index.html"))
}

// PublishSite uploads every file of a site directory and deletes remote
// objects that no longer exist locally.
// Parameters:
//   - ctx: context for cancellation.
//   - root: output root.
//   - slug: site slug.
//
// Returns:
//   - PublishStats: uploaded and deleted counts.
//   - error: non-nil on the first failed storage call.
func (p *Publisher) PublishSite(ctx context.Context, root, slug string) (PublishStats, error) {
	var stats PublishStats
	dir := filepath.Join(root, slug)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("failed to read site dir: %w", err)
	}

	local := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || strings.HasPrefix(e.Name(), stagePrefix) {
			continue
		}
		key := p.key(slug, e.Name())
		if err := p.upload(ctx, filepath.Join(dir, e.Name()), key); err != nil {
			return stats, err
		}
		local[key] = true
		stats.Uploaded++
	}

	remote, err := p.store.List(ctx, p.key(slug)+"/")
	if err != nil {
		return stats, err
	}
	for _, key := range remote {
		if local[key] {
			continue
		}
		if err := p.store.Delete(ctx, key); err != nil {
			return stats, err
		}
		stats.Deleted++
	}

	logger.With(logger.Fields{"uploaded": stats.Uploaded, "deleted": stats.Deleted}).
		Info(ctx, "Published %s", p.SiteURL(slug))
	return stats, nil
}

// PublishIndex uploads the root index page and manifest.
func (p *Publisher) PublishIndex(ctx context.Context, root string) error {
	for _, name := range []string{gallery.IndexFileName, gallery.ManifestFileName} {
		if err := p.upload(ctx, filepath.Join(root, name), p.key(name)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) upload(ctx context.Context, file, key string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	return p.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType(file))
}

func contentType(file string) string {
	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".json":
		return "application/json"
	case ".html":
		return "text/html; charset=utf-8"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
