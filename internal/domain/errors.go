package domain

import "errors"

// Configuration errors abort the invocation with a non-zero exit.
var (
	ErrManifestNotFound = errors.New("manifest not found")
	ErrUnknownSite      = errors.New("unknown site")
	ErrInvalidIndexSpec = errors.New("invalid index spec")
	ErrInvalidRange     = errors.New("invalid site range")
	ErrInvalidSlug      = errors.New("invalid site slug")
	ErrInvalidSetting   = errors.New("invalid setting")
)

// IsConfigError reports whether err is one of the fatal configuration errors.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrManifestNotFound) ||
		errors.Is(err, ErrUnknownSite) ||
		errors.Is(err, ErrInvalidIndexSpec) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidSlug) ||
		errors.Is(err, ErrInvalidSetting)
}
