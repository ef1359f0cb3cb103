package featartists

import (
	"regexp"
	"strings"
)

// reWhitelistSep splits a persisted whitelist blob into entries.
var reWhitelistSep = regexp.MustCompile(`[\n,;]`)

// Whitelist is a set of case-folded full artist credits that are exempt
// from all processing.
type Whitelist map[string]struct{}

// ParseWhitelist parses a delimited whitelist blob. Entries may be
// separated by newlines, commas, or semicolons; empty entries are
// dropped. Membership tests are case-insensitive.
func ParseWhitelist(blob string) Whitelist {
	wl := make(Whitelist)
	if blob == "" {
		return wl
	}
	for _, entry := range reWhitelistSep.Split(blob, -1) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		wl[strings.ToLower(entry)] = struct{}{}
	}
	return wl
}

// Contains reports whether the exact credit is whitelisted.
func (wl Whitelist) Contains(credit string) bool {
	if credit == "" || len(wl) == 0 {
		return false
	}
	_, ok := wl[strings.ToLower(strings.TrimSpace(credit))]
	return ok
}

// ContainsCreditOrLead reports whether the exact credit or its lead
// artist is whitelisted. A whitelisted lead protects the whole credit
// even when the displayed credit carries feature tokens.
func (wl Whitelist) ContainsCreditOrLead(credit string) bool {
	if wl.Contains(credit) {
		return true
	}
	lead, _ := SplitArtistFeat(credit)
	return lead != "" && wl.Contains(lead)
}
