package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DefaultMinBytes is the smallest payload accepted as a real image. Smaller
// bodies are placeholders or error pages.
const DefaultMinBytes = 3000

var errPayloadTooSmall = errors.New("payload below size floor")

// formatExts maps decoder format names to the extension they are saved under.
var formatExts = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// PayloadInfo describes a downloaded image.
type PayloadInfo struct {
	Size   int
	Format string // empty when the header could not be decoded
	Width  int
	Height int
}

// inspectPayload enforces the size floor and reads the image header when the
// format is known. An undecodable header is not an error.
func inspectPayload(data []byte, minBytes int) (PayloadInfo, error) {
	info := PayloadInfo{Size: len(data)}
	if len(data) < minBytes {
		return info, fmt.Errorf("%w: %d < %d bytes", errPayloadTooSmall, len(data), minBytes)
	}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		info.Format = format
		info.Width = cfg.Width
		info.Height = cfg.Height
	}
	return info, nil
}

// formatMismatch reports whether a decoded format disagrees with the file
// extension. An undecoded format never disagrees.
func formatMismatch(format, ext string) bool {
	want, ok := formatExts[format]
	if !ok {
		return false
	}
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	return want != ext
}
