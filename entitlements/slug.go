package entitlements

import (
	"regexp"
	"strings"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]{2,40}$`)

// ValidSlug reports whether s is an acceptable category slug:
// lowercase alphanumerics and hyphens, length 2-40.
func ValidSlug(s string) bool {
	return slugRe.MatchString(s)
}

// NormalizeSlug lowercases and trims a raw category value. It does not
// validate; pair with ValidSlug where rejection matters.
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
