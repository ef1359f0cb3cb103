// Package pipeline registers metadata processors and invokes them over
// track and album records. Processors run synchronously, one record at
// a time, and may not retain state between calls: each invocation gets
// a fresh configuration snapshot from the provider.
package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/tagstand/internal/config"
	"github.com/llehouerou/tagstand/internal/metadata"
)

// Context carries what a processor may depend on during one call.
type Context struct {
	Log zerolog.Logger
	Cfg *config.Config
}

// TrackProcessor mutates one track's metadata record in place.
type TrackProcessor func(ctx *Context, rec *metadata.Record)

// AlbumProcessor mutates one album's metadata record in place.
type AlbumProcessor func(ctx *Context, rec *metadata.Record)

// Registry holds registered processors in registration order.
type Registry struct {
	log      zerolog.Logger
	provider config.Provider
	tracks   []TrackProcessor
	albums   []AlbumProcessor
}

// NewRegistry returns a registry whose processors get their
// configuration from provider on every call.
func NewRegistry(log zerolog.Logger, provider config.Provider) *Registry {
	return &Registry{log: log, provider: provider}
}

// RegisterTrack adds a track processor.
func (r *Registry) RegisterTrack(p TrackProcessor) {
	r.tracks = append(r.tracks, p)
}

// RegisterAlbum adds an album processor.
func (r *Registry) RegisterAlbum(p AlbumProcessor) {
	r.albums = append(r.albums, p)
}

// ProcessTrack runs every registered track processor against the
// record. A processor that panics is logged and its changes reverted;
// the remaining processors still run. Nothing is ever propagated to
// the caller, so one bad record cannot abort a batch.
func (r *Registry) ProcessTrack(rec *metadata.Record) {
	ctx, err := r.newContext()
	if err != nil {
		r.log.Error().Err(err).Msg("loading configuration, record left unchanged")
		return
	}
	for _, p := range r.tracks {
		runSafely(ctx, rec, p)
	}
}

// ProcessAlbum runs every registered album processor against the
// record, with the same isolation guarantees as ProcessTrack.
func (r *Registry) ProcessAlbum(rec *metadata.Record) {
	ctx, err := r.newContext()
	if err != nil {
		r.log.Error().Err(err).Msg("loading configuration, record left unchanged")
		return
	}
	for _, p := range r.albums {
		runSafely(ctx, rec, p)
	}
}

func (r *Registry) newContext() (*Context, error) {
	cfg, err := r.provider.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Context{Log: r.log, Cfg: cfg}, nil
}

// runSafely invokes one processor and contains any panic: the record
// is restored from a pre-call clone so a failing processor degrades to
// "metadata unchanged".
func runSafely(ctx *Context, rec *metadata.Record, p func(*Context, *metadata.Record)) {
	before := rec.Clone()
	defer func() {
		if v := recover(); v != nil {
			ctx.Log.Error().Interface("panic", v).Msg("processor panicked, reverting record")
			restore(rec, before)
		}
	}()
	p(ctx, rec)
}

func restore(rec, from *metadata.Record) {
	for _, k := range rec.Keys() {
		if !from.Contains(k) {
			rec.Delete(k)
		}
	}
	for _, k := range from.Keys() {
		rec.SetAll(k, from.GetAll(k))
	}
}
