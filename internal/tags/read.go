package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// Read reads tag metadata from a music file into a Record.
// Tag names are lower-cased; multi-valued tags keep all their values.
func Read(path string) (*metadata.Record, error) {
	if !IsSupported(path) {
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}

	rec := metadata.New()
	basicErr := readBasic(path, rec)

	// TagLib exposes the full property map, including multi-valued tags
	// and free-form fields the basic reader does not surface.
	props, taglibErr := taglib.ReadTags(path)
	if taglibErr == nil {
		for key, values := range props {
			clean := nonEmpty(values)
			if len(clean) == 0 {
				continue
			}
			rec.SetAll(strings.ToLower(key), clean)
		}
	}

	if basicErr != nil && taglibErr != nil {
		return nil, fmt.Errorf("read tags: %w", taglibErr)
	}

	splitPairTag(rec, "tracknumber", "totaltracks")
	splitPairTag(rec, "discnumber", "totaldiscs")
	return rec, nil
}

// splitPairTag normalizes a "3/12" style number tag into separate
// number and total tags. Some taggers store both in a single field.
func splitPairTag(rec *metadata.Record, name, totalName string) {
	num, total := splitNumberPair(rec.Get(name))
	if total == "" {
		return
	}
	rec.Set(name, num)
	if !rec.Contains(totalName) {
		rec.Set(totalName, total)
	}
}

// readBasic populates the standard fields using dhowden/tag.
// It fails on some UTF-16 encoded ID3 tags and some ffmpeg-created M4A
// files; the TagLib property map covers those cases.
func readBasic(path string, rec *metadata.Record) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return err
	}

	setIf := func(name, value string) {
		if value != "" {
			rec.Set(name, value)
		}
	}

	setIf("title", m.Title())
	setIf("artist", m.Artist())
	setIf("album", m.Album())
	setIf("albumartist", m.AlbumArtist())
	setIf("genre", m.Genre())
	if year := m.Year(); year > 0 {
		rec.Set("date", strconv.Itoa(year))
	}
	if num, total := m.Track(); num > 0 {
		rec.Set("tracknumber", strconv.Itoa(num))
		if total > 0 {
			rec.Set("totaltracks", strconv.Itoa(total))
		}
	}
	if num, total := m.Disc(); num > 0 {
		rec.Set("discnumber", strconv.Itoa(num))
		if total > 0 {
			rec.Set("totaldiscs", strconv.Itoa(total))
		}
	}
	return nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
