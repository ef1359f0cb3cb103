package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tagstand/internal/config"
	"github.com/llehouerou/tagstand/internal/featartists"
	"github.com/llehouerou/tagstand/internal/guardrails"
	"github.com/llehouerou/tagstand/internal/journal"
	"github.com/llehouerou/tagstand/internal/metadata"
	"github.com/llehouerou/tagstand/internal/pipeline"
	"github.com/llehouerou/tagstand/internal/rename"
	"github.com/llehouerou/tagstand/internal/tags"
)

var (
	writeChanges bool
	doRename     bool
	destRoot     string
)

var processCmd = &cobra.Command{
	Use:   "process [paths...]",
	Short: "Rewrite featured-artist credits and transliterate tags",
	Long: `Walk the given paths for music files, group them by directory as
albums, and run the configured processors over their tags. Without
--write nothing is modified; changes are only reported.

Examples:
  tagstand process ~/Music
  tagstand process ~/Downloads/new-album --write
  tagstand process ~/Music --write --rename`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&writeChanges, "write", false, "write changes to files (default is a dry run)")
	processCmd.Flags().BoolVar(&doRename, "rename", false, "move written files to their templated paths")
	processCmd.Flags().StringVar(&destRoot, "dest", "", "destination root for --rename (default: the search path the file came from)")
}

// albumGroup is one directory worth of music files, treated as an album.
type albumGroup struct {
	dir   string
	root  string
	files []string
}

// trackState pairs a file with its processed and original records.
type trackState struct {
	path string
	rec  *metadata.Record
	orig *metadata.Record
}

// processStats accumulates counters for the final report.
type processStats struct {
	scanned int
	changed int
	written int
	renamed int
	failed  int
	bytes   uint64
}

func runProcess(cmd *cobra.Command, args []string) error {
	provider := config.FileProvider{}
	cfg, err := provider.Snapshot()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg := pipeline.NewRegistry(log, provider)
	pipeline.RegisterDefaults(reg)

	var guard *guardrails.Guard
	if doRename && cfg.Guardrails.Enabled {
		j, err := journal.Open(cfg.Guardrails.JournalPath)
		if err != nil {
			return fmt.Errorf("open rename journal: %w", err)
		}
		defer j.Close()
		guard = guardrails.New(log, j, cfg.Guardrails.FatalOnCollision, renameConfig(cfg))
	}

	albums, err := collectAlbums(args)
	if err != nil {
		return err
	}

	var stats processStats
	for _, album := range albums {
		processAlbum(reg, cfg, guard, album, &stats)
	}

	report(stats)
	return nil
}

// collectAlbums walks the given paths and groups supported music files
// by their directory.
func collectAlbums(paths []string) ([]albumGroup, error) {
	groups := make(map[string]*albumGroup)

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		root := abs
		if !info.IsDir() {
			root = filepath.Dir(abs)
		}

		err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !tags.IsSupported(path) {
				return nil
			}
			dir := filepath.Dir(path)
			g, ok := groups[dir]
			if !ok {
				g = &albumGroup{dir: dir, root: root}
				groups[dir] = g
			}
			g.files = append(g.files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	out := make([]albumGroup, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g.files)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].dir < out[j].dir })
	return out, nil
}

// albumLevelTags are synchronized between the album record and its tracks.
var albumLevelTags = []string{
	featartists.TagAlbum,
	featartists.TagAlbumArtist,
	featartists.TagAlbumArtists,
	featartists.TagAlbumArtistSort,
	featartists.TagAlbumArtistsSrt,
}

func processAlbum(reg *pipeline.Registry, cfg *config.Config, guard *guardrails.Guard, album albumGroup, stats *processStats) {
	tracks := make([]*trackState, 0, len(album.files))
	for _, path := range album.files {
		stats.scanned++
		rec, err := tags.Read(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("reading tags")
			stats.failed++
			continue
		}
		tracks = append(tracks, &trackState{path: path, rec: rec, orig: rec.Clone()})
	}
	if len(tracks) == 0 {
		return
	}

	// Album-level tags live on every track; process them once against a
	// dedicated record, then fold the result back into each track.
	albumRec := metadata.New()
	for _, name := range albumLevelTags {
		if tracks[0].rec.Contains(name) {
			albumRec.SetAll(name, tracks[0].rec.GetAll(name))
		}
	}
	reg.ProcessAlbum(albumRec)

	for _, t := range tracks {
		for _, name := range albumLevelTags {
			if albumRec.Contains(name) {
				t.rec.SetAll(name, albumRec.GetAll(name))
			}
		}
		reg.ProcessTrack(t.rec)

		if recordsEqual(t.rec, t.orig) {
			continue
		}
		stats.changed++
		logChanges(t)

		if !writeChanges {
			continue
		}
		if err := tags.Write(t.path, t.rec); err != nil {
			log.Error().Err(err).Str("path", t.path).Msg("writing tags")
			stats.failed++
			continue
		}
		stats.written++
		if info, err := os.Stat(t.path); err == nil {
			stats.bytes += uint64(info.Size())
		}
	}

	if doRename && writeChanges {
		for _, t := range tracks {
			renameTrack(cfg, guard, album, t, stats)
		}
	}
}

// logChanges reports every tag whose value differs from the original.
func logChanges(t *trackState) {
	for _, name := range t.rec.Keys() {
		before := t.orig.GetAll(name)
		after := t.rec.GetAll(name)
		if slices.Equal(before, after) {
			continue
		}
		log.Info().
			Str("path", t.path).
			Str("tag", name).
			Str("from", strings.Join(before, "; ")).
			Str("to", strings.Join(after, "; ")).
			Msg("tag change")
	}
	for _, name := range t.orig.Keys() {
		if !t.rec.Contains(name) {
			log.Info().
				Str("path", t.path).
				Str("tag", name).
				Str("from", t.orig.Get(name)).
				Msg("tag removed")
		}
	}
}

func renameTrack(cfg *config.Config, guard *guardrails.Guard, album albumGroup, t *trackState, stats *processStats) {
	meta := rename.FromRecord(t.rec)

	root := destRoot
	if root == "" {
		root = album.root
	}
	rel := rename.GeneratePathWithConfig(meta, renameConfig(cfg)) + strings.ToLower(filepath.Ext(t.path))
	dest := filepath.Join(root, rel)
	if dest == t.path {
		return
	}

	// The move itself may be forced onto a " (n)" suffixed path when the
	// destination is taken; the guard then decides what to do about it.
	safe := guardrails.SafeDestination(dest)
	if guard != nil {
		if err := guard.RecordOriginal(safe, t.path); err != nil {
			log.Error().Err(err).Str("path", t.path).Msg("recording rename journal entry")
		}
	}
	if err := os.MkdirAll(filepath.Dir(safe), 0o755); err != nil {
		log.Error().Err(err).Str("path", safe).Msg("creating destination directory")
		stats.failed++
		return
	}
	if err := os.Rename(t.path, safe); err != nil {
		log.Error().Err(err).Str("path", t.path).Str("dest", safe).Msg("moving file")
		stats.failed++
		return
	}

	final := safe
	if guard != nil {
		var err error
		final, err = guard.HandleSaved(safe, meta, root)
		if err != nil {
			log.Error().Err(err).Str("path", t.path).Msg("filename collision")
			stats.failed++
			return
		}
	}
	log.Info().Str("from", t.path).Str("to", final).Msg("renamed")
	t.path = final
	stats.renamed++
}

// renameConfig converts the TOML rename section into templates,
// falling back to the defaults for empty fields.
func renameConfig(cfg *config.Config) rename.Config {
	out := rename.DefaultConfig()
	if cfg.Rename.Folder != "" {
		out.Folder = cfg.Rename.Folder
	}
	if cfg.Rename.Filename != "" {
		out.Filename = cfg.Rename.Filename
	}
	return out
}

func recordsEqual(a, b *metadata.Record) bool {
	ak, bk := a.Keys(), b.Keys()
	if len(ak) != len(bk) {
		return false
	}
	for _, k := range ak {
		if !slices.Equal(a.GetAll(k), b.GetAll(k)) {
			return false
		}
	}
	for _, k := range bk {
		if !a.Contains(k) {
			return false
		}
	}
	return true
}

func report(stats processStats) {
	fmt.Printf("%s files scanned, %s changed, %s written (%s), %s renamed, %s failed\n",
		humanize.Comma(int64(stats.scanned)),
		humanize.Comma(int64(stats.changed)),
		humanize.Comma(int64(stats.written)),
		humanize.Bytes(stats.bytes),
		humanize.Comma(int64(stats.renamed)),
		humanize.Comma(int64(stats.failed)))
}
