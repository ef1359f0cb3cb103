package tags

import (
	"fmt"
	"strings"

	"github.com/Sorrow446/go-mp4tag"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// m4aStandardTags are the record names covered by first-class MP4 atoms.
// Everything else becomes a freeform iTunes atom.
var m4aStandardTags = map[string]struct{}{
	"title":       {},
	"artist":      {},
	"album":       {},
	"albumartist": {},
	"artistsort":  {},
	"genre":       {},
	"date":        {},
	"tracknumber": {},
	"totaltracks": {},
	"discnumber":  {},
	"totaldiscs":  {},
}

// writeM4ATags writes MP4/M4A tags using go-mp4tag.
func writeM4ATags(path string, rec *metadata.Record) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	custom := make(map[string]string)
	for _, name := range writableTags(rec) {
		if _, ok := m4aStandardTags[name]; ok {
			continue
		}
		custom[strings.ToUpper(name)] = joinValues(nonEmpty(rec.GetAll(name)))
	}

	t := &mp4tag.MP4Tags{
		Title:       rec.Get("title"),
		Artist:      rec.Get("artist"),
		Album:       rec.Get("album"),
		AlbumArtist: rec.Get("albumartist"),
		ArtistSort:  rec.Get("artistsort"),
		TrackNumber: safeInt16(atoiOrZero(rec.Get("tracknumber"))),
		TrackTotal:  safeInt16(atoiOrZero(rec.Get("totaltracks"))),
		DiscNumber:  safeInt16(atoiOrZero(rec.Get("discnumber"))),
		DiscTotal:   safeInt16(atoiOrZero(rec.Get("totaldiscs"))),
		Date:        rec.Get("date"),
		CustomGenre: rec.Get("genre"),
		Custom:      custom,
	}

	if err := mp4.Write(t, nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func safeInt16(n int) int16 {
	if n < 0 || n > 32767 {
		return 0
	}
	return int16(n)
}
