// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a lowercase letter, digit,
	// space, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// hyphenRuns collapses consecutive hyphens into one.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "PV Junction Box (IP68)" → "pv-junction-box-ip68"
func Generate(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = disallowed.ReplaceAllString(out, "")
	out = strings.ReplaceAll(out, " ", "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
