package audio

import (
	"os"

	"github.com/bogem/id3v2"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
)

// TagConfig controls which ID3 fields the Tagger writes.
//
// Traktrain exposes far less metadata than a full release would, so the
// config is small: title, artist, and optional cover art.
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text tags are written.
	ModifyTags bool

	// EmbedArtwork controls whether downloaded cover art is attached.
	EmbedArtwork bool
}

// DefaultTagConfig returns the default tag configuration with everything
// enabled.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:   true,
		EmbedArtwork: true,
	}
}

// Tagger writes ID3 tags to downloaded MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(track.FilePath(folder, cfg), track, artworkBytes)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger. A nil config uses DefaultTagConfig.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes title/artist frames and optional cover art to the MP3
// file at path.
//
// artwork must be JPEG bytes; pass nil to skip the picture frame.
func (t *Tagger) SaveTags(path string, track *model.Track, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if os.IsNotExist(err) {
			tag = id3v2.NewEmptyTag()
		} else {
			return err
		}
	}
	defer tag.Close()

	if t.config.ModifyTags {
		tag.SetTitle(track.Name)
		tag.SetArtist(track.Artist)
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, track.Artist)
	}

	if t.config.EmbedArtwork && artwork != nil {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	return tag.Save()
}
