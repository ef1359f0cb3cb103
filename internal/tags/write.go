package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// Write writes a Record back to a music file, replacing its existing tags.
// The file must already exist; it is modified in place.
func Write(path string, rec *metadata.Record) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		return writeMP3Tags(path, rec)
	case ExtFLAC:
		return writeFLACTags(path, rec)
	case ExtOPUS, ExtOGG, ExtOGA:
		return writeOggTags(path, rec)
	case ExtM4A, ExtMP4:
		return writeM4ATags(path, rec)
	}
	return fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
}

// writableTags returns the record's tag names that belong in a file.
// Names starting with "~" are session-internal and never persisted.
func writableTags(rec *metadata.Record) []string {
	keys := rec.Keys()
	out := make([]string, 0, len(keys))
	for _, name := range keys {
		if strings.HasPrefix(name, "~") {
			continue
		}
		if len(nonEmpty(rec.GetAll(name))) == 0 {
			continue
		}
		out = append(out, name)
	}
	return out
}
