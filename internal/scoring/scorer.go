package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Score ranks text for curation. Deterministic, no I/O. Each distinct
// keyword counts once regardless of repetition; distinct keywords all add.
// The result is advisory ranking input for the curation stage only.
func (p Profile) Score(text, emotion string) float64 {
	lowered := normalize(text)
	words := tokenize(lowered)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	var score float64

	for _, bonus := range p.LengthBonuses {
		if len(words) >= bonus.MinWords {
			score += bonus.Bonus
			break
		}
	}

	for _, phrase := range p.Tier1Phrases {
		if strings.Contains(lowered, phrase) {
			score += p.Tier1Weight
		}
	}
	for _, word := range p.Tier2Words {
		if _, ok := wordSet[word]; ok {
			score += p.Tier2Weight
		}
	}
	for _, word := range p.Tier3Words {
		if _, ok := wordSet[word]; ok {
			score += p.Tier3Weight
		}
	}

	for _, entry := range p.Logistics {
		if matchEntry(lowered, wordSet, entry) {
			score -= p.LogisticsPenalty
		}
	}

	if emotion != "" {
		tag := strings.ToLower(strings.TrimSpace(emotion))
		for _, positive := range p.PositiveEmotions {
			if tag == positive {
				score += p.EmotionBonus
				break
			}
		}
	}

	if p.ClampNegative && score < 0 {
		return 0
	}
	return score
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Eligible applies the threshold filter for this profile. Under the
// long-note policy a negative-scoring row stays eligible for filtering
// only once it clears the profile's word gate.
func (p Profile) Eligible(score float64, wordCount int, minScore float64, minWords int) bool {
	if !p.ClampNegative && score < 0 && wordCount < p.NegativeWordGate {
		return false
	}
	return score >= minScore && wordCount >= minWords
}

// Keywords returns the matched emotional (tier-1 and tier-2) and
// thoughtful (tier-3) keywords for the long-note candidate columns.
func (p Profile) Keywords(text string) (emotional, thoughtful []string) {
	lowered := normalize(text)
	words := tokenize(lowered)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	for _, phrase := range p.Tier1Phrases {
		if strings.Contains(lowered, phrase) {
			emotional = append(emotional, phrase)
		}
	}
	for _, word := range p.Tier2Words {
		if _, ok := wordSet[word]; ok {
			emotional = append(emotional, word)
		}
	}
	for _, word := range p.Tier3Words {
		if _, ok := wordSet[word]; ok {
			thoughtful = append(thoughtful, word)
		}
	}
	return emotional, thoughtful
}

// normalize NFC-normalizes and lower-cases text once so composed and
// decomposed Unicode forms match the same keywords.
func normalize(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// tokenize splits on whitespace and trims surrounding punctuation so
// "love," and "love" match the same keyword.
func tokenize(lowered string) []string {
	fields := strings.Fields(lowered)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}

func matchEntry(lowered string, wordSet map[string]struct{}, entry string) bool {
	if strings.Contains(entry, " ") {
		return strings.Contains(lowered, entry)
	}
	_, ok := wordSet[entry]
	return ok
}
