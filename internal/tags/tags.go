// Package tags provides unified tag reading and writing for music files.
// Files are read into a metadata.Record keyed by lower-cased tag names,
// and records are written back using the native tagging format of each
// container: ID3v2.4 for MP3, Vorbis comments for FLAC and Ogg, and
// iTunes-style atoms for M4A.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// IsSupported reports whether the file extension is a supported music format.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// multiValueSeparator joins multi-valued tags when the target format can
// only store a single string per field (ID3v2 text frames, MP4 atoms).
const multiValueSeparator = "; "

func joinValues(values []string) string {
	return strings.Join(values, multiValueSeparator)
}

// numberString formats a number/total pair the way ID3v2 TRCK and TPOS
// frames expect ("3/12", or just "3" when the total is unknown).
func numberString(num, total string) string {
	if num == "" {
		return ""
	}
	if total == "" {
		return num
	}
	return num + "/" + total
}

// splitNumberPair parses a "num/total" string into its parts.
// A plain number yields an empty total.
func splitNumberPair(s string) (num, total string) {
	num, total, ok := strings.Cut(s, "/")
	if !ok {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(num), strings.TrimSpace(total)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
