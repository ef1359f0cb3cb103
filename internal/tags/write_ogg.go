package tags

import (
	"fmt"
	"strings"

	"go.senan.xyz/taglib"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// writeOggTags writes Vorbis comments to Opus and Ogg files using TagLib.
func writeOggTags(path string, rec *metadata.Record) error {
	props := make(map[string][]string)
	for _, name := range writableTags(rec) {
		props[strings.ToUpper(name)] = nonEmpty(rec.GetAll(name))
	}
	if err := taglib.WriteTags(path, props, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}
