package pipeline

import (
	"github.com/llehouerou/tagstand/internal/asciifier"
	"github.com/llehouerou/tagstand/internal/featartists"
	"github.com/llehouerou/tagstand/internal/metadata"
)

// RegisterDefaults wires the built-in processors into the registry:
// featured-artists standardization always, ASCII transliteration when
// enabled in the configuration snapshot of the current call.
func RegisterDefaults(r *Registry) {
	r.RegisterTrack(func(ctx *Context, rec *metadata.Record) {
		featartists.ProcessTrack(ctx.Log, rec, featOptions(ctx))
	})
	r.RegisterAlbum(func(ctx *Context, rec *metadata.Record) {
		featartists.ProcessAlbum(ctx.Log, rec, featOptions(ctx))
	})

	r.RegisterTrack(func(ctx *Context, rec *metadata.Record) {
		if !ctx.Cfg.Asciifier.Enabled {
			return
		}
		asciifier.Process(ctx.Log, rec, asciifierOptions(ctx))
	})
	r.RegisterAlbum(func(ctx *Context, rec *metadata.Record) {
		if !ctx.Cfg.Asciifier.Enabled {
			return
		}
		asciifier.Process(ctx.Log, rec, asciifierOptions(ctx))
	})
}

func featOptions(ctx *Context) featartists.Options {
	return featartists.Options{
		AddFeaturedArtistsTag: ctx.Cfg.FeaturedArtists.AddFeaturedArtistsTag,
		Whitelist:             featartists.ParseWhitelist(ctx.Cfg.FeaturedArtists.Whitelist),
	}
}

func asciifierOptions(ctx *Context) asciifier.Options {
	return asciifier.Options{
		Tags:         ctx.Cfg.Asciifier.Tags,
		DisabledMaps: ctx.Cfg.Asciifier.DisabledMaps,
	}
}
