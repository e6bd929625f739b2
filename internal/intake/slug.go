package intake

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL-safe slug from a title: lowercased,
// non-alphanumeric runs collapsed to single hyphens, leading/trailing
// hyphens stripped, suffixed with an 8-hex-character random token so two
// offers with the same title get distinct slugs.
func GenerateSlug(title string) string {
	base := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	base = strings.Trim(base, "-")
	suffix := uuid.NewString()[:8]
	return base + "-" + suffix
}
