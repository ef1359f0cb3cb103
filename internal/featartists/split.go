// Package featartists moves featured-artist credits out of artist
// fields and into title suffixes. The parsing grammar is deliberately
// conservative: lead artist names are never split, and guest names are
// only split on unambiguous separators so band names like "AC/DC" or
// "Simon & Garfunkel" survive untouched.
package featartists

import (
	"regexp"
	"strings"
)

var (
	// reFeatSplit splits a credit at the first feature token. The lead
	// segment is the non-greedy prefix, the guest tail is everything after.
	reFeatSplit = regexp.MustCompile(`(?i)^(.*?)(?:\bfeat\.|\bfeaturing\b|\bwith\b)\s*(.*)$`)
	// reFeatSep splits the guest tail on conservative separators.
	// A bare '/' does not split; only ' / ' (slash surrounded by spaces) does.
	reFeatSep = regexp.MustCompile(`(?i)\s*,\s*|\s*&\s*|\s*;\s*|\s*\+\s*|\s+and\s+|\s+/\s+`)
)

// wrapperPairs are the bracket pairs stripped from extracted names.
var wrapperPairs = [][2]string{
	{"(", ")"},
	{"[", "]"},
	{"{", "}"},
}

// stripWrappers trims whitespace and removes balanced outer bracket
// wrappers, repeatedly, as long as the whole string is wrapped. Inner
// punctuation and dashes are never touched.
func stripWrappers(s string) string {
	t := strings.TrimSpace(s)
	for t != "" {
		stripped := false
		for _, pair := range wrapperPairs {
			if strings.HasPrefix(t, pair[0]) && strings.HasSuffix(t, pair[1]) {
				t = strings.TrimSpace(t[1 : len(t)-1])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return t
}

// NormalizeFeatList splits a guest tail into individual guest names.
// Names are wrapper-stripped, empty pieces dropped, and duplicates
// removed case-insensitively while preserving first-seen order.
func NormalizeFeatList(tail string) []string {
	if tail == "" {
		return nil
	}
	seen := make(map[string]bool)
	var ordered []string
	for _, p := range reFeatSep.Split(tail, -1) {
		name := stripWrappers(p)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		ordered = append(ordered, name)
	}
	return ordered
}

// SplitArtistFeat splits a free-text artist credit into the lead artist
// and the list of featured guests. When the credit contains no feature
// token it is returned verbatim with an empty guest list. When the lead
// segment reduces to nothing after wrapper stripping, the original
// credit is returned as the lead so no information is lost.
func SplitArtistFeat(credit string) (string, []string) {
	if credit == "" {
		return "", nil
	}
	m := reFeatSplit.FindStringSubmatch(credit)
	if m == nil {
		return credit, nil
	}
	lead := stripWrappers(m[1])
	tail := stripWrappers(m[2])
	if lead == "" {
		lead = credit
	}
	return lead, NormalizeFeatList(tail)
}
