package notes

import (
	"strings"
	"time"
)

// RawMessage is one imported text message. Text is nil when the source
// export carried no body for the row; such messages are never curated.
type RawMessage struct {
	ID      string
	Sender  string
	SentAt  time.Time
	Text    *string
	Emotion string
}

// HasText reports whether the message carries a non-empty body.
func (m RawMessage) HasText() bool {
	return m.Text != nil && strings.TrimSpace(*m.Text) != ""
}

// CandidateRow is one curated note, serialized as a single CSV row in the
// per-year candidate file. Filename is the predicted raw-asset name derived
// from (year, id); it is not a guarantee that the asset exists.
type CandidateRow struct {
	ID       string
	Text     string
	Date     string
	Emotion  string
	Filename string

	// Scored columns, populated only when the curation profile writes the
	// extended long-note header.
	Score              float64
	WordCount          int
	EmotionalKeywords  string
	ThoughtfulKeywords string
}

// ScoredCandidate pairs a candidate with its ranking inputs. It exists only
// between scoring and serialization and is discarded once the CSV is written.
type ScoredCandidate struct {
	Row       CandidateRow
	Score     float64
	WordCount int
}

// ManifestEntry binds one curated row to its rendered distribution asset,
// or records the absence of one. Date and Filename marshal as JSON null
// when unset; a nil Filename with HasAudio false is a valid terminal state.
type ManifestEntry struct {
	Year     int     `json:"year"`
	SourceID string  `json:"sourceId"`
	Date     *string `json:"date"`
	Filename *string `json:"filename"`
	HasAudio bool    `json:"hasAudio"`
}

// Manifest is the per-year index of all curated rows and their assets.
type Manifest struct {
	Year    int             `json:"year"`
	Entries []ManifestEntry `json:"entries"`
}
