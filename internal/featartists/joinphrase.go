package featartists

import (
	"regexp"
	"strings"
)

// reFtVariant matches any " ft "/" ft. "/" feat "/" feat. "/" featuring "
// join phrase between two names.
var reFtVariant = regexp.MustCompile(`(?i) f(ea)?t(\.|uring)? `)

// StandardizeJoinPhrases rewrites the connector text between credited
// artist names to the canonical " feat. " form. The names list is the
// host-supplied multi-valued credit; the freeform credit string is
// matched against the names in order, and each captured join phrase is
// normalized. When either input is empty or the names do not line up
// with the credit string, the original string is returned with ok set
// to false and no changes are made. This is the only best-effort path
// in the package: a mismatch is an expected condition, not an error.
func StandardizeJoinPhrases(credit string, names []string) (string, bool) {
	if credit == "" || len(names) == 0 {
		return credit, false
	}

	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = regexp.QuoteMeta(name)
	}
	pattern := `^` + strings.Join(quoted, `(\s*.*\s*)`) + `(\s*.*$)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return credit, false
	}

	m := re.FindStringSubmatch(credit)
	if m == nil {
		return credit, false
	}

	var b strings.Builder
	for i, name := range names {
		b.WriteString(name)
		b.WriteString(reFtVariant.ReplaceAllString(m[i+1], " feat. "))
	}
	return b.String(), true
}
