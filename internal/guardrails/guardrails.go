// Package guardrails detects filename collisions after a save. When a
// file had to be suffixed with " (n)" because its target path was
// taken, the guard either re-runs naming with the collision template
// or rolls the file back to its journaled original path.
package guardrails

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/llehouerou/tagstand/internal/journal"
	"github.com/llehouerou/tagstand/internal/rename"
)

// ErrCollision is returned in fatal mode when a saved file carries a
// collision suffix.
var ErrCollision = errors.New("filename collision detected")

// reCollisionSuffix matches basenames like "Song Title (2).mp3".
// "(live).mp3" does not match: the suffix must be numeric and preceded
// by a space.
var reCollisionSuffix = regexp.MustCompile(`^(.*) \((\d+)\)(\.[^.]*)$`)

// HasCollisionSuffix reports whether the file's basename carries a
// " (n)" collision suffix.
func HasCollisionSuffix(path string) bool {
	return reCollisionSuffix.MatchString(filepath.Base(path))
}

// Guard wires collision handling to the rename journal.
type Guard struct {
	log     zerolog.Logger
	journal *journal.Journal
	// FatalOnCollision rolls back instead of re-running naming.
	fatal     bool
	renameCfg rename.Config
}

func New(log zerolog.Logger, j *journal.Journal, fatal bool, renameCfg rename.Config) *Guard {
	return &Guard{log: log, journal: j, fatal: fatal, renameCfg: renameCfg}
}

// RecordOriginal journals the original path of a file that is about to
// be moved to current. Called before the move so a rollback is
// possible even after a crash.
func (g *Guard) RecordOriginal(current, original string) error {
	return g.journal.Record(current, original)
}

// HandleSaved inspects the path a file ended up at. Clean saves clear
// the journal entry. A collision either rolls back (fatal mode,
// returning the restored path and ErrCollision) or re-runs naming with
// the collision flag and moves the file when that produces a new,
// free path.
func (g *Guard) HandleSaved(savedPath string, meta rename.TrackMetadata, destRoot string) (string, error) {
	if !HasCollisionSuffix(savedPath) {
		if err := g.journal.Clear(savedPath); err != nil {
			g.log.Error().Err(err).Str("path", savedPath).Msg("clearing journal entry")
		}
		return savedPath, nil
	}
	g.log.Debug().Str("path", savedPath).Msg("detected collision suffix")

	if g.fatal {
		return g.rollback(savedPath)
	}
	return g.rerunNaming(savedPath, meta, destRoot)
}

func (g *Guard) rollback(savedPath string) (string, error) {
	original, ok, err := g.journal.Lookup(savedPath)
	if err != nil {
		return savedPath, fmt.Errorf("journal lookup: %w", err)
	}
	if !ok {
		return savedPath, fmt.Errorf("%w: original path not recorded", ErrCollision)
	}
	if original == savedPath {
		return savedPath, ErrCollision
	}

	if err := os.MkdirAll(filepath.Dir(original), 0o755); err != nil {
		return savedPath, fmt.Errorf("%w: rollback failed: %v", ErrCollision, err)
	}
	if err := os.Rename(savedPath, original); err != nil {
		return savedPath, fmt.Errorf("%w: rollback failed: %v", ErrCollision, err)
	}
	if err := g.journal.Clear(savedPath); err != nil {
		g.log.Error().Err(err).Str("path", savedPath).Msg("clearing journal entry after rollback")
	}
	g.log.Error().Str("from", savedPath).Str("to", original).Msg("collision fatal, rolled back")
	return original, ErrCollision
}

func (g *Guard) rerunNaming(savedPath string, meta rename.TrackMetadata, destRoot string) (string, error) {
	meta.Collision = true
	newPath := filepath.Join(destRoot, rename.GeneratePathWithConfig(meta, g.renameCfg)) + filepath.Ext(savedPath)

	if newPath == savedPath {
		g.log.Debug().Str("path", savedPath).Msg("alternate naming produced same path, keeping it")
		return savedPath, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		g.log.Debug().Str("path", newPath).Msg("alternate path also taken, keeping suffixed name")
		return savedPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return savedPath, fmt.Errorf("rename after collision: %w", err)
	}
	if err := os.Rename(savedPath, newPath); err != nil {
		return savedPath, fmt.Errorf("rename after collision: %w", err)
	}
	g.log.Debug().Str("from", savedPath).Str("to", newPath).Msg("renamed with collision template")

	// Carry the journal entry over to the new location.
	if original, ok, err := g.journal.Lookup(savedPath); err == nil && ok {
		if err := g.journal.Record(newPath, original); err != nil {
			g.log.Error().Err(err).Msg("recording moved journal entry")
		}
	}
	if err := g.journal.Clear(savedPath); err != nil {
		g.log.Error().Err(err).Str("path", savedPath).Msg("clearing journal entry")
	}
	return newPath, nil
}

// SafeDestination returns dest if it is free, otherwise the first
// "stem (n).ext" variant that does not exist yet. This mirrors how
// save pipelines disambiguate colliding names.
func SafeDestination(dest string) string {
	if _, err := os.Stat(dest); err != nil {
		return dest
	}
	ext := filepath.Ext(dest)
	stem := dest[:len(dest)-len(ext)]
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
