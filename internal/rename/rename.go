// Package rename generates library paths for music files from their
// processed tags. Templates use {placeholder} syntax; a collision mode
// switches to an alternate filename template so a re-run after a
// filename clash can produce a distinct path.
package rename

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/llehouerou/tagstand/internal/metadata"
)

const (
	unknownArtist = "unknown artist"
	unknownAlbum  = "unknown album"
	unknownTitle  = "unknown title"
)

// Default templates. The collision template adds the year so a re-run
// after a collision lands on a different filename.
const (
	DefaultFolderTemplate    = "{albumartist}/{year} • {album}"
	DefaultFilenameTemplate  = "{artist} • {album} • {tracknumber} · {title}"
	DefaultCollisionTemplate = "{artist} • {album} • {tracknumber} · {title} [{year}]"
)

// Config holds the rename templates.
type Config struct {
	Folder            string // template for the folder path
	Filename          string // template for the filename (without extension)
	CollisionFilename string // filename template used when Collision is set
}

// DefaultConfig returns the default templates.
func DefaultConfig() Config {
	return Config{
		Folder:            DefaultFolderTemplate,
		Filename:          DefaultFilenameTemplate,
		CollisionFilename: DefaultCollisionTemplate,
	}
}

// TrackMetadata contains the tag values needed to generate a path.
type TrackMetadata struct {
	Artist      string
	AlbumArtist string
	Album       string
	Title       string
	TrackNumber int
	DiscNumber  int
	TotalDiscs  int
	Date        string // YYYY or YYYY-MM-DD

	// Collision selects the alternate filename template.
	Collision bool
}

// FromRecord builds TrackMetadata from a processed tag record.
func FromRecord(rec *metadata.Record) TrackMetadata {
	return TrackMetadata{
		Artist:      rec.Get("artist"),
		AlbumArtist: rec.Get("albumartist"),
		Album:       rec.Get("album"),
		Title:       rec.Get("title"),
		TrackNumber: atoiDefault(rec.Get("tracknumber")),
		DiscNumber:  atoiDefault(rec.Get("discnumber")),
		TotalDiscs:  atoiDefault(rec.Get("totaldiscs")),
		Date:        rec.Get("date"),
	}
}

func atoiDefault(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

var (
	// reQuestionMarks matches ? and ¿
	reQuestionMarks = regexp.MustCompile(`[¿?]+`)
	// reQuoteMarks matches double and fancy quote marks
	// U+0022 ("), U+201C ("), U+201D ("), U+2018 ('), U+2019 (')
	reQuoteMarks = regexp.MustCompile(`["\x{201c}\x{201d}\x{2018}\x{2019}]+`)
	// reIllegalFileChars matches characters not allowed in filenames,
	// with surrounding whitespace
	reIllegalFileChars = regexp.MustCompile(`\s*[/\\><*:_|]+\s*`)
	// reEndPeriod matches a period at the end of a string
	reEndPeriod = regexp.MustCompile(`\.$`)
	// reMultiSpace matches multiple whitespace characters
	reMultiSpace = regexp.MustCompile(`\s+`)
)

// removeQuestionMarks removes ? and ¿ characters
func removeQuestionMarks(s string) string {
	return reQuestionMarks.ReplaceAllString(s, "")
}

// replaceQuoteMarks replaces various quote marks with single quotes
func replaceQuoteMarks(s string) string {
	return reQuoteMarks.ReplaceAllString(s, "'")
}

// replaceIllegalFileChars replaces illegal filename characters with " - "
func replaceIllegalFileChars(s string) string {
	return reIllegalFileChars.ReplaceAllString(s, " - ")
}

// removeEndPeriod removes a trailing period from a string
func removeEndPeriod(s string) string {
	return reEndPeriod.ReplaceAllString(s, "")
}

// normalizeSpaces trims and reduces multiple whitespace to single space
func normalizeSpaces(s string) string {
	return strings.TrimSpace(reMultiSpace.ReplaceAllString(s, " "))
}

// cleanForFilename applies all transformations needed for safe filenames.
// Tag content is preserved as much as possible: the pipeline already
// standardized the tags, so only filesystem-hostile characters change.
func cleanForFilename(s string) string {
	s = removeQuestionMarks(s)
	s = replaceQuoteMarks(s)
	s = replaceIllegalFileChars(s)
	s = normalizeSpaces(s)
	return s
}

// cleanForFolder applies transformations for folder names (includes
// trailing period removal)
func cleanForFolder(s string) string {
	s = cleanForFilename(s)
	s = removeEndPeriod(s)
	return s
}

// getYear extracts the year (first 4 chars) from a date string
func getYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

// segment represents either a literal string or a placeholder.
type segment struct {
	isPlaceholder bool
	value         string // placeholder name (without braces) or literal text
}

// parseTemplate parses a template string into segments. Placeholders
// are {name}, escaped braces are {{ and }}.
func parseTemplate(template string) []segment {
	if template == "" {
		return nil
	}

	var segments []segment
	var current []rune
	inPlaceholder := false

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '{' && i+1 < len(runes) && runes[i+1] == '{' {
			current = append(current, '{')
			i++
			continue
		}
		if r == '}' && i+1 < len(runes) && runes[i+1] == '}' {
			current = append(current, '}')
			i++
			continue
		}

		if r == '{' && !inPlaceholder {
			if len(current) > 0 {
				segments = append(segments, segment{value: string(current)})
				current = nil
			}
			inPlaceholder = true
			continue
		}

		if r == '}' && inPlaceholder {
			segments = append(segments, segment{isPlaceholder: true, value: string(current)})
			current = nil
			inPlaceholder = false
			continue
		}

		current = append(current, r)
	}

	if len(current) > 0 {
		segments = append(segments, segment{isPlaceholder: inPlaceholder, value: string(current)})
	}

	return segments
}

// resolvePlaceholder resolves a single placeholder against the track
// metadata. Unknown placeholders are kept verbatim so template typos
// stay visible in the output path.
func resolvePlaceholder(name string, m TrackMetadata) string {
	switch name {
	case "artist":
		if m.Artist == "" {
			return unknownArtist
		}
		return m.Artist
	case "albumartist":
		if m.AlbumArtist != "" {
			return m.AlbumArtist
		}
		if m.Artist != "" {
			return m.Artist
		}
		return unknownArtist
	case "album":
		if m.Album == "" {
			return unknownAlbum
		}
		return m.Album
	case "title":
		if m.Title == "" {
			return unknownTitle
		}
		return m.Title
	case "tracknumber":
		track := fmt.Sprintf("%02d", m.TrackNumber)
		if m.TotalDiscs > 1 && m.DiscNumber > 0 {
			return fmt.Sprintf("%d.%s", m.DiscNumber, track)
		}
		return track
	case "discnumber":
		return fmt.Sprintf("%d", m.DiscNumber)
	case "year":
		return getYear(m.Date)
	case "date":
		return m.Date
	default:
		return "{" + name + "}"
	}
}

// renderTemplate resolves a template to a cleaned path component.
// Separator literals next to an empty placeholder are dropped, so
// "{year} • {album}" degrades to "Album" when the date is unknown.
func renderTemplate(template string, m TrackMetadata, clean func(string) string) []string {
	var parts []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, clean(current.String()))
			current.Reset()
		}
	}

	lastEmpty := false
	for _, seg := range parseTemplate(template) {
		switch {
		case !seg.isPlaceholder && seg.value == "/":
			flush()
		case seg.isPlaceholder:
			resolved := resolvePlaceholder(seg.value, m)
			lastEmpty = resolved == ""
			current.WriteString(resolved)
		default:
			sep := strings.TrimSpace(seg.value)
			if (lastEmpty || current.Len() == 0) && (sep == "•" || sep == "·") {
				continue
			}
			current.WriteString(seg.value)
		}
	}
	flush()

	return parts
}

// GeneratePath generates a relative file path (without extension) from
// track metadata using the default config.
func GeneratePath(m TrackMetadata) string {
	return GeneratePathWithConfig(m, DefaultConfig())
}

// GeneratePathWithConfig generates a relative file path (without
// extension) using the provided templates. When m.Collision is set and
// a collision template is configured, the filename uses that template
// instead.
func GeneratePathWithConfig(m TrackMetadata, cfg Config) string {
	folderParts := renderTemplate(cfg.Folder, m, cleanForFolder)

	filenameTemplate := cfg.Filename
	if m.Collision && cfg.CollisionFilename != "" {
		filenameTemplate = cfg.CollisionFilename
	}
	filenameParts := renderTemplate(filenameTemplate, m, cleanForFilename)
	filename := strings.Join(filenameParts, " ")

	folderPath := filepath.Join(folderParts...)
	return filepath.Join(folderPath, filename)
}
