package notes

import (
	"fmt"
	"strings"
)

// Asset file extensions. The raw WAV returned by the TTS provider is kept
// for recovery; the MP3 is the distribution format downstream consumers use.
const (
	RawExt          = "wav"
	DistributionExt = "mp3"
)

// DefaultPrefix is the asset-name prefix used when the config leaves it empty.
const DefaultPrefix = "david"

// AssetName builds the canonical asset filename for a note:
// <prefix>-<year>-love-note-<id>.<ext>. This convention is the sole join
// key between candidate CSV rows and rendered audio files and must not
// change shape.
func AssetName(prefix, year, id, ext string) string {
	return fmt.Sprintf("%s.%s", AssetStem(prefix, year, id), ext)
}

// AssetStem returns the filename without extension.
func AssetStem(prefix, year, id string) string {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%s-love-note-%s", prefix, year, id)
}

// MatchesStem reports whether name is an asset for the given stem. An exact
// extension match is not required, but the character after the stem must be
// a boundary ('.' or '-') so the stem for id "4" never claims id "42"'s
// asset.
func MatchesStem(name, stem string) bool {
	if !strings.HasPrefix(name, stem) {
		return false
	}
	rest := name[len(stem):]
	if rest == "" {
		return true
	}
	return rest[0] == '.' || rest[0] == '-'
}
