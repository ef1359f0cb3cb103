package pipeline

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tagstand/internal/config"
	"github.com/llehouerou/tagstand/internal/metadata"
)

func newTestRegistry(cfg *config.Config) *Registry {
	return NewRegistry(zerolog.Nop(), config.Static{Cfg: cfg})
}

func TestProcessorsRunInRegistrationOrder(t *testing.T) {
	r := newTestRegistry(nil)
	var order []string
	r.RegisterTrack(func(_ *Context, _ *metadata.Record) { order = append(order, "first") })
	r.RegisterTrack(func(_ *Context, _ *metadata.Record) { order = append(order, "second") })

	r.ProcessTrack(metadata.New())

	require.Equal(t, []string{"first", "second"}, order)
}

func TestPanicRevertsRecordAndContinues(t *testing.T) {
	r := newTestRegistry(nil)
	r.RegisterTrack(func(_ *Context, rec *metadata.Record) {
		rec.Set("artist", "corrupted")
		rec.Set("extra", "junk")
		panic("boom")
	})
	ran := false
	r.RegisterTrack(func(_ *Context, rec *metadata.Record) {
		ran = true
		rec.Set("title", "touched")
	})

	rec := metadata.New()
	rec.Set("artist", "Lead Artist")
	r.ProcessTrack(rec)

	assert.Equal(t, "Lead Artist", rec.Get("artist"), "panicking processor's writes must be reverted")
	assert.False(t, rec.Contains("extra"))
	assert.True(t, ran, "later processors must still run")
	assert.Equal(t, "touched", rec.Get("title"))
}

func TestDefaultsMoveFeaturedArtists(t *testing.T) {
	r := newTestRegistry(nil)
	RegisterDefaults(r)

	rec := metadata.New()
	rec.Set("artist", "Lead Artist feat. Guest A & Guest B")
	rec.Set("title", "Song Title")
	r.ProcessTrack(rec)

	assert.Equal(t, "Lead Artist", rec.Get("artist"))
	assert.Equal(t, "Song Title (feat. Guest A; Guest B)", rec.Get("title"))
}

func TestDefaultsAlbumFlow(t *testing.T) {
	r := newTestRegistry(nil)
	RegisterDefaults(r)

	rec := metadata.New()
	rec.Set("albumartist", "Lead Artist feat. Guest")
	rec.Set("album", "Album Title")
	r.ProcessAlbum(rec)

	assert.Equal(t, "Lead Artist", rec.Get("albumartist"))
	assert.Equal(t, "Album Title (feat. Guest)", rec.Get("album"))
}

func TestDefaultsRespectConfig(t *testing.T) {
	cfg := config.Default()
	cfg.FeaturedArtists.Whitelist = "Lead Artist"
	cfg.Asciifier.Enabled = true
	r := newTestRegistry(cfg)
	RegisterDefaults(r)

	rec := metadata.New()
	rec.Set("artist", "Lead Artist feat. Guest")
	rec.Set("title", "Café Song")
	r.ProcessTrack(rec)

	// Whitelisted credit untouched by the featured-artists pass
	assert.Equal(t, "Lead Artist feat. Guest", rec.Get("artist"))
	// Asciifier enabled via config
	assert.Equal(t, "Cafe Song", rec.Get("title"))
}

func TestDefaultsEmitFeaturedArtistsTag(t *testing.T) {
	cfg := config.Default()
	cfg.FeaturedArtists.AddFeaturedArtistsTag = true
	r := newTestRegistry(cfg)
	RegisterDefaults(r)

	rec := metadata.New()
	rec.Set("artist", "Lead Artist feat. Guest")
	rec.Set("title", "Song")
	r.ProcessTrack(rec)

	assert.Equal(t, []string{"Guest"}, rec.GetAll("featured_artists"))
}

// Running the full default pipeline twice must be a no-op the second time.
func TestDefaultsIdempotent(t *testing.T) {
	r := newTestRegistry(nil)
	RegisterDefaults(r)

	rec := metadata.New()
	rec.Set("artist", "Lead Artist feat. Guest A & Guest B")
	rec.Set("title", "Song Title")

	r.ProcessTrack(rec)
	first := rec.Clone()
	r.ProcessTrack(rec)

	assert.Equal(t, first.Get("artist"), rec.Get("artist"))
	assert.Equal(t, first.Get("title"), rec.Get("title"))
}
