package featartists

import (
	"regexp"
	"strings"
)

var (
	// reFeatSuffix detects an existing "(feat. …)" style suffix at the end
	// of a title, whatever token variant it uses.
	reFeatSuffix = regexp.MustCompile(`(?i)\(\s*(?:feat\.|featuring|with)\s+.+\)\s*$`)
	// reFeatSuffixTrim matches the suffix together with the whitespace
	// preceding it, for suffix replacement.
	reFeatSuffixTrim = regexp.MustCompile(`(?i)\s*\(\s*(?:feat\.|featuring|with)\s+.+\)\s*$`)
)

// HasFeatSuffix reports whether the title already ends with a featured
// artists suffix.
func HasFeatSuffix(title string) bool {
	return reFeatSuffix.MatchString(title)
}

// formatFeatSuffix renders the canonical suffix for a guest list.
func formatFeatSuffix(guests []string) string {
	return " (feat. " + strings.Join(guests, "; ") + ")"
}

// AppendFeatSuffix appends the canonical "(feat. A; B)" suffix to a
// title. A title that already carries a feat/featuring/with suffix is
// returned unchanged, so repeated application never stacks suffixes.
// The existing guest names are not refreshed; use ReplaceFeatSuffix for
// that. Empty titles and empty guest lists pass through unchanged.
func AppendFeatSuffix(title string, guests []string) string {
	if title == "" || len(guests) == 0 {
		return title
	}
	if HasFeatSuffix(title) {
		return title
	}
	return title + formatFeatSuffix(guests)
}

// ReplaceFeatSuffix rewrites the title's featured artists suffix with
// the given guest list, replacing any existing suffix. This is an
// explicit opt-in alternative to AppendFeatSuffix and is not used by
// the default track/album processors.
func ReplaceFeatSuffix(title string, guests []string) string {
	if title == "" || len(guests) == 0 {
		return title
	}
	base := reFeatSuffixTrim.ReplaceAllString(title, "")
	if base == "" {
		base = title
	}
	return base + formatFeatSuffix(guests)
}
