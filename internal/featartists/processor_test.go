package featartists

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/llehouerou/tagstand/internal/metadata"
)

func trackRecord(artist, title string) *metadata.Record {
	rec := metadata.New()
	rec.Set(TagArtist, artist)
	rec.Set(TagTitle, title)
	return rec
}

func albumRecord(albumArtist, album string) *metadata.Record {
	rec := metadata.New()
	rec.Set(TagAlbumArtist, albumArtist)
	rec.Set(TagAlbum, album)
	return rec
}

func TestProcessTrackMovesGuestsToTitle(t *testing.T) {
	rec := trackRecord("Lead Artist feat. Guest A & Guest B", "Song Title")

	ProcessTrack(zerolog.Nop(), rec, Options{})

	if got := rec.Get(TagArtist); got != "Lead Artist" {
		t.Errorf("artist = %q, want %q", got, "Lead Artist")
	}
	if got := rec.Get(TagTitle); got != "Song Title (feat. Guest A; Guest B)" {
		t.Errorf("title = %q, want %q", got, "Song Title (feat. Guest A; Guest B)")
	}
	if rec.Contains(TagFeaturedArtists) {
		t.Error("FEATURED_ARTISTS written without the option enabled")
	}
}

func TestProcessTrackEmitsFeaturedArtistsTag(t *testing.T) {
	rec := trackRecord("Lead Artist feat. Guest A & Guest B", "Song Title")

	ProcessTrack(zerolog.Nop(), rec, Options{AddFeaturedArtistsTag: true})

	want := []string{"Guest A", "Guest B"}
	if got := rec.GetAll(TagFeaturedArtists); !reflect.DeepEqual(got, want) {
		t.Errorf("FEATURED_ARTISTS = %v, want %v", got, want)
	}
}

func TestProcessTrackRespectsWhitelist(t *testing.T) {
	tests := []struct {
		name      string
		whitelist string
	}{
		{"exact credit", "Lead Artist feat. Guest"},
		{"lead artist", "Lead Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := trackRecord("Lead Artist feat. Guest", "Song")
			opts := Options{Whitelist: ParseWhitelist(tt.whitelist)}

			ProcessTrack(zerolog.Nop(), rec, opts)

			if got := rec.Get(TagArtist); got != "Lead Artist feat. Guest" {
				t.Errorf("artist mutated to %q despite whitelist", got)
			}
			if got := rec.Get(TagTitle); got != "Song" {
				t.Errorf("title mutated to %q despite whitelist", got)
			}
		})
	}
}

func TestProcessTrackReducesSortName(t *testing.T) {
	rec := trackRecord("Lead Artist feat. Guest", "Song")
	rec.Set(TagArtistSort, "Artist, Lead feat. Guest")

	ProcessTrack(zerolog.Nop(), rec, Options{})

	if got := rec.Get(TagArtistSort); got != "Artist, Lead" {
		t.Errorf("artistsort = %q, want %q", got, "Artist, Lead")
	}
}

func TestProcessTrackStandardizesJoinPhrases(t *testing.T) {
	rec := trackRecord("Lead Artist ft. Guest", "Song")
	rec.SetAll(TagArtists, []string{"Lead Artist", "Guest"})

	ProcessTrack(zerolog.Nop(), rec, Options{})

	// The standardized credit then goes through the regular split.
	if got := rec.Get(TagArtist); got != "Lead Artist" {
		t.Errorf("artist = %q, want %q", got, "Lead Artist")
	}
	if got := rec.Get(TagTitle); got != "Song (feat. Guest)" {
		t.Errorf("title = %q, want %q", got, "Song (feat. Guest)")
	}
}

func TestProcessTrackNoTokenLeavesRecordAlone(t *testing.T) {
	rec := trackRecord("Simon & Garfunkel", "The Boxer")

	ProcessTrack(zerolog.Nop(), rec, Options{})

	if got := rec.Get(TagArtist); got != "Simon & Garfunkel" {
		t.Errorf("artist = %q, want unchanged", got)
	}
	if got := rec.Get(TagTitle); got != "The Boxer" {
		t.Errorf("title = %q, want unchanged", got)
	}
}

func TestProcessTrackIdempotent(t *testing.T) {
	rec := trackRecord("Lead Artist feat. Guest A & Guest B", "Song Title")
	rec.Set(TagArtistSort, "Artist, Lead feat. Guest A & Guest B")

	ProcessTrack(zerolog.Nop(), rec, Options{AddFeaturedArtistsTag: true})
	first := rec.Clone()
	ProcessTrack(zerolog.Nop(), rec, Options{AddFeaturedArtistsTag: true})

	for _, tag := range []string{TagArtist, TagArtistSort, TagTitle} {
		if rec.Get(tag) != first.Get(tag) {
			t.Errorf("%s changed on second pass: %q -> %q", tag, first.Get(tag), rec.Get(tag))
		}
	}
	if !reflect.DeepEqual(rec.GetAll(TagFeaturedArtists), first.GetAll(TagFeaturedArtists)) {
		t.Error("FEATURED_ARTISTS changed on second pass")
	}
}

func TestProcessTrackExistingSuffixNotStacked(t *testing.T) {
	rec := trackRecord("Lead Artist feat. New Guest", "Song (feat. Old Guest)")

	ProcessTrack(zerolog.Nop(), rec, Options{})

	if got := rec.Get(TagArtist); got != "Lead Artist" {
		t.Errorf("artist = %q, want %q", got, "Lead Artist")
	}
	// Skip-on-existing: the old suffix stays, nothing is appended.
	if got := rec.Get(TagTitle); got != "Song (feat. Old Guest)" {
		t.Errorf("title = %q, want %q", got, "Song (feat. Old Guest)")
	}
}

func TestProcessAlbumMovesGuestsToAlbumTitle(t *testing.T) {
	rec := albumRecord("Lead Artist feat. Guest", "Album Title")

	ProcessAlbum(zerolog.Nop(), rec, Options{})

	if got := rec.Get(TagAlbumArtist); got != "Lead Artist" {
		t.Errorf("albumartist = %q, want %q", got, "Lead Artist")
	}
	if got := rec.Get(TagAlbum); got != "Album Title (feat. Guest)" {
		t.Errorf("album = %q, want %q", got, "Album Title (feat. Guest)")
	}
}

func TestProcessAlbumSkipsVariousArtists(t *testing.T) {
	tests := []string{"Various Artists", "various artists", " VARIOUS ARTISTS "}

	for _, artist := range tests {
		t.Run(artist, func(t *testing.T) {
			rec := albumRecord(artist, "Compilation feat. Everyone")

			ProcessAlbum(zerolog.Nop(), rec, Options{})

			if got := rec.Get(TagAlbumArtist); got != artist {
				t.Errorf("albumartist = %q, want unchanged", got)
			}
			if got := rec.Get(TagAlbum); got != "Compilation feat. Everyone" {
				t.Errorf("album = %q, want unchanged", got)
			}
		})
	}
}

func TestProcessAlbumRespectsWhitelist(t *testing.T) {
	rec := albumRecord("Lead Artist feat. Guest", "Album")
	opts := Options{Whitelist: ParseWhitelist("Lead Artist")}

	ProcessAlbum(zerolog.Nop(), rec, opts)

	if got := rec.Get(TagAlbumArtist); got != "Lead Artist feat. Guest" {
		t.Errorf("albumartist mutated to %q despite whitelist", got)
	}
	if got := rec.Get(TagAlbum); got != "Album" {
		t.Errorf("album mutated to %q despite whitelist", got)
	}
}

func TestProcessAlbumEmptyAlbumArtist(t *testing.T) {
	rec := albumRecord("", "Album")

	ProcessAlbum(zerolog.Nop(), rec, Options{})

	if got := rec.Get(TagAlbum); got != "Album" {
		t.Errorf("album = %q, want unchanged", got)
	}
}

func TestProcessAlbumIdempotent(t *testing.T) {
	rec := albumRecord("Lead Artist feat. Guest", "Album Title")

	ProcessAlbum(zerolog.Nop(), rec, Options{})
	first := rec.Clone()
	ProcessAlbum(zerolog.Nop(), rec, Options{})

	for _, tag := range []string{TagAlbumArtist, TagAlbum} {
		if rec.Get(tag) != first.Get(tag) {
			t.Errorf("%s changed on second pass: %q -> %q", tag, first.Get(tag), rec.Get(tag))
		}
	}
}
