package source

import (
	"html"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/timmy/reconlens/internal/domain"
)

var (
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// AllowedExts are the image extensions kept on disk.
var AllowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// StripHTML removes markup and collapses whitespace.
func StripHTML(raw string) string {
	cleaned := tagRe.ReplaceAllString(raw, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(html.UnescapeString(cleaned), " "))
}

// ExtFor picks the file extension for a candidate: the URL suffix when it is
// an allowed image type, else one inferred from the MIME type, else the default.
func ExtFor(c domain.Candidate) string {
	if u, err := url.Parse(c.ImageURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if AllowedExts[ext] {
			return ext
		}
	}
	mime := strings.ToLower(c.MimeType)
	switch {
	case strings.Contains(mime, "jpeg"), strings.Contains(mime, "jpg"):
		return ".jpg"
	case strings.Contains(mime, "png"):
		return ".png"
	case strings.Contains(mime, "webp"):
		return ".webp"
	case strings.Contains(mime, "gif"):
		return ".gif"
	}
	return domain.DefaultExt
}
