package tags

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// writeFLACTags writes Vorbis comments to a FLAC file.
// Vorbis comments are natively multi-valued, so every value of a
// multi-valued tag gets its own comment.
func writeFLACTags(path string, rec *metadata.Record) error {
	f, err := parseFLAC(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmtIdx := -1
	for i, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmtIdx = i
			break
		}
	}

	// Always build a fresh comment block to avoid duplicate tags.
	cmts := flacvorbis.New()
	for _, name := range writableTags(rec) {
		key := strings.ToUpper(name)
		for _, value := range nonEmpty(rec.GetAll(name)) {
			if err := cmts.Add(key, value); err != nil {
				return fmt.Errorf("add %s: %w", key, err)
			}
		}
	}

	cmtBlock := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtBlock
	} else {
		f.Meta = append(f.Meta, &cmtBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// parseFLAC parses a FLAC file, stripping a leading ID3v2 tag first if
// one is present. Some rippers prepend ID3 tags that go-flac rejects.
func parseFLAC(path string) (*flac.File, error) {
	f, err := flac.ParseFile(path)
	if err == nil {
		return f, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil || len(data) < 10 || string(data[:3]) != id3Magic {
		return nil, err
	}

	// Syncsafe tag size in bytes 6-9, plus the 10-byte header.
	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	tagSize := size + 10
	if data[5]&0x10 != 0 {
		tagSize += 10
	}
	if tagSize+4 > len(data) || string(data[tagSize:tagSize+4]) != "fLaC" {
		return nil, err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return nil, statErr
	}
	if writeErr := os.WriteFile(path, data[tagSize:], info.Mode()); writeErr != nil {
		return nil, fmt.Errorf("strip ID3 tag: %w", writeErr)
	}
	return flac.ParseFile(path)
}
