package tags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/llehouerou/tagstand/internal/metadata"
)

// id3TextFrames maps record tag names to their ID3v2.4 text frames.
// Anything not listed here is written as a TXXX user-defined frame.
var id3TextFrames = map[string]string{
	"title":           "TIT2",
	"artist":          "TPE1",
	"album":           "TALB",
	"albumartist":     "TPE2",
	"genre":           "TCON",
	"date":            "TDRC",
	"composer":        "TCOM",
	"artistsort":      "TSOP",
	"albumartistsort": "TSO2",
	"albumsort":       "TSOA",
	"titlesort":       "TSOT",
}

// writeMP3Tags writes ID3v2.4 tags to an MP3 file.
func writeMP3Tags(path string, rec *metadata.Record) error {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		// ID3v2.2 or older tags, strip them and retry
		if stripErr := stripID3Tag(path); stripErr != nil {
			return fmt.Errorf("strip unsupported ID3 tag: %w", stripErr)
		}
		t, err = id3v2.Open(path, id3v2.Options{Parse: true})
	}
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer t.Close()

	t.SetVersion(4)
	t.SetDefaultEncoding(id3v2.EncodingUTF8)
	t.DeleteAllFrames()

	if track := numberString(rec.Get("tracknumber"), rec.Get("totaltracks")); track != "" {
		t.AddTextFrame("TRCK", id3v2.EncodingUTF8, track)
	}
	if disc := numberString(rec.Get("discnumber"), rec.Get("totaldiscs")); disc != "" {
		t.AddTextFrame("TPOS", id3v2.EncodingUTF8, disc)
	}

	for _, name := range writableTags(rec) {
		switch name {
		case "tracknumber", "totaltracks", "discnumber", "totaldiscs":
			continue
		}
		value := joinValues(nonEmpty(rec.GetAll(name)))
		if frameID, ok := id3TextFrames[name]; ok {
			t.AddTextFrame(frameID, id3v2.EncodingUTF8, value)
			continue
		}
		t.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: strings.ToUpper(name),
			Value:       value,
		})
	}

	if err := t.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

// stripID3Tag removes an ID3v2 tag from the head of an MP3 file.
// Used for ID3v2.2 tags which the id3v2 library cannot parse.
func stripID3Tag(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if len(data) < 10 || string(data[:3]) != id3Magic {
		return nil
	}

	// Tag size is a syncsafe integer in bytes 6-9, excluding the 10-byte
	// header. An ID3v2.4 footer adds another 10 bytes when flagged.
	size := int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f)
	tagSize := size + 10
	if data[5]&0x10 != 0 {
		tagSize += 10
	}
	if tagSize >= len(data) {
		return fmt.Errorf("ID3 tag size (%d) exceeds file size (%d)", tagSize, len(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if err := os.WriteFile(path, data[tagSize:], info.Mode()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
