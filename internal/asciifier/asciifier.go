// Package asciifier transliterates non-ASCII characters in tag values
// to ASCII approximations. Explicitly mapped characters use a lookup
// table; accented letters without an explicit mapping are folded by
// stripping combining marks after NFD decomposition. Characters with no
// reasonable ASCII form pass through unchanged, so the transformation
// is idempotent.
package asciifier

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// foldDiacritics removes combining marks from decomposed runes.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Converter applies ASCII transliteration with a fixed table.
type Converter struct {
	table map[rune]string
}

// New builds a converter with the built-in replacement maps, minus the
// named disabled categories. Unknown category names are ignored.
func New(disabledMaps []string) *Converter {
	return &Converter{table: buildTable(disabledMaps)}
}

// Convert returns the ASCII-safe form of s. Already-ASCII input comes
// back unchanged.
func (c *Converter) Convert(s string) string {
	if s == "" {
		return ""
	}
	ascii := true
	for _, r := range s {
		if r >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		default:
			b.WriteString(c.convertRune(r))
		}
	}
	return b.String()
}

func (c *Converter) convertRune(r rune) string {
	if repl, ok := c.table[r]; ok {
		return repl
	}
	// Fold combining marks: "é" -> "e", "Š" -> "S".
	folded, _, err := transform.String(foldDiacritics, string(r))
	if err == nil && folded != string(r) && isASCII(folded) {
		return folded
	}
	return string(r)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r >= 0x80 {
			return false
		}
	}
	return true
}

// Options configures the metadata processors.
type Options struct {
	// Tags lists the tag names whose values are transliterated.
	Tags []string
	// DisabledMaps names built-in replacement categories to skip.
	DisabledMaps []string
}

// Process transliterates the configured tags of a record in place,
// including every value of multi-valued tags.
func Process(log zerolog.Logger, rec *metadata.Record, opts Options) {
	conv := New(opts.DisabledMaps)
	for _, tag := range opts.Tags {
		if !rec.Contains(tag) {
			continue
		}
		values := rec.GetAll(tag)
		changed := false
		for i, v := range values {
			if out := conv.Convert(v); out != v {
				values[i] = out
				changed = true
			}
		}
		if changed {
			rec.SetAll(tag, values)
			log.Debug().Str("tag", tag).Msg("transliterated tag to ascii")
		}
	}
}
