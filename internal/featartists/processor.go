package featartists

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// Tag names read and written by the processors.
const (
	TagArtist          = "artist"
	TagArtists         = "artists"
	TagArtistSort      = "artistsort"
	TagArtistsSort     = "~artists_sort"
	TagAlbumArtist     = "albumartist"
	TagAlbumArtists    = "~albumartists"
	TagAlbumArtistSort = "albumartistsort"
	TagAlbumArtistsSrt = "~albumartists_sort"
	TagTitle           = "title"
	TagAlbum           = "album"

	// TagFeaturedArtists is the optional multi-valued output tag.
	TagFeaturedArtists = "featured_artists"
)

const variousArtists = "various artists"

// Options is the per-call configuration snapshot for the processors.
// Callers build it fresh for every record so configuration edits take
// effect on the next processed item.
type Options struct {
	// AddFeaturedArtistsTag writes the normalized guest list as a
	// multi-valued FEATURED_ARTISTS tag on track records.
	AddFeaturedArtistsTag bool
	// Whitelist holds full artist credits exempt from processing.
	Whitelist Whitelist
}

// standardizeField runs join-phrase standardization on a single credit
// field against its parallel multi-valued name list and writes the
// result back when it changed.
func standardizeField(rec *metadata.Record, field, listTag string) {
	value := rec.Get(field)
	names := rec.GetAll(listTag)
	if value == "" || len(names) == 0 {
		return
	}
	if std, ok := StandardizeJoinPhrases(value, names); ok && std != value {
		rec.Set(field, std)
	}
}

// reduceSortField reduces a sort-name credit to its own lead artist.
func reduceSortField(rec *metadata.Record, field string) {
	if sort := rec.Get(field); sort != "" {
		lead, _ := SplitArtistFeat(sort)
		rec.Set(field, lead)
	}
}

// ProcessTrack moves featured artists from the track's artist credit
// into the title. It is idempotent: a second run on its own output
// finds no feature token and leaves the record alone.
func ProcessTrack(log zerolog.Logger, rec *metadata.Record, opts Options) {
	artist := rec.Get(TagArtist)
	if opts.Whitelist.ContainsCreditOrLead(artist) {
		log.Debug().Str("artist", artist).Msg("skipping whitelisted artist credit")
		return
	}

	standardizeField(rec, TagArtist, TagArtists)
	standardizeField(rec, TagArtistSort, TagArtistsSort)
	artist = rec.Get(TagArtist)

	lead, guests := SplitArtistFeat(artist)
	if len(guests) == 0 {
		return
	}
	guestStr := strings.Join(guests, "; ")
	log.Debug().
		Str("title", rec.Get(TagTitle)).
		Str("guests", guestStr).
		Msg("moving featured artists from artist to title")

	rec.Set(TagArtist, lead)
	reduceSortField(rec, TagArtistSort)

	if title := rec.Get(TagTitle); title != "" {
		newTitle := AppendFeatSuffix(title, guests)
		if newTitle != title {
			rec.Set(TagTitle, newTitle)
			log.Debug().Str("title", newTitle).Msg("updated title")
		}
	}

	if opts.AddFeaturedArtistsTag {
		rec.SetAll(TagFeaturedArtists, guests)
		log.Debug().Str("guests", guestStr).Msg("added featured artists tag")
	}
}

// ProcessAlbum is the album-level counterpart of ProcessTrack,
// operating on albumartist/albumartistsort/album. Various Artists
// releases never get a synthesized album suffix.
func ProcessAlbum(log zerolog.Logger, rec *metadata.Record, opts Options) {
	albumArtist := rec.Get(TagAlbumArtist)
	if albumArtist == "" {
		return
	}
	if opts.Whitelist.ContainsCreditOrLead(albumArtist) {
		log.Debug().Str("albumartist", albumArtist).Msg("skipping whitelisted album artist credit")
		return
	}

	standardizeField(rec, TagAlbumArtist, TagAlbumArtists)
	standardizeField(rec, TagAlbumArtistSort, TagAlbumArtistsSrt)
	albumArtist = rec.Get(TagAlbumArtist)

	if strings.ToLower(strings.TrimSpace(albumArtist)) == variousArtists {
		log.Debug().Msg("skipping Various Artists album")
		return
	}

	lead, guests := SplitArtistFeat(albumArtist)
	if len(guests) == 0 {
		return
	}
	guestStr := strings.Join(guests, "; ")
	log.Debug().
		Str("album", rec.Get(TagAlbum)).
		Str("guests", guestStr).
		Msg("moving featured artists from album artist to album title")

	rec.Set(TagAlbumArtist, lead)
	reduceSortField(rec, TagAlbumArtistSort)

	if album := rec.Get(TagAlbum); album != "" {
		newAlbum := AppendFeatSuffix(album, guests)
		if newAlbum != album {
			rec.Set(TagAlbum, newAlbum)
			log.Debug().Str("album", newAlbum).Msg("updated album title")
		}
	}
}
