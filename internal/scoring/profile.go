package scoring

import "fmt"

// LengthBonus awards Bonus when a text has at least MinWords words.
// Bonuses in a profile are ordered longest first; only the first tier that
// matches applies.
type LengthBonus struct {
	MinWords int
	Bonus    float64
}

// Profile is one named, versioned scoring policy.
type Profile struct {
	Name string

	// Tier1Phrases are exact multi-word phrases of direct affection; the
	// highest per-match weight. Tier2Words are single emotionally-charged
	// words; Tier3Words are relational or future-oriented words.
	Tier1Phrases []string
	Tier2Words   []string
	Tier3Words   []string

	Tier1Weight float64
	Tier2Weight float64
	Tier3Weight float64

	// Logistics entries mark scheduling/errand/apology text; each match
	// subtracts LogisticsPenalty. Entries containing a space match as
	// phrases, the rest as whole words.
	Logistics        []string
	LogisticsPenalty float64

	LengthBonuses []LengthBonus

	PositiveEmotions []string
	EmotionBonus     float64

	// ClampNegative zeroes negative totals before threshold filtering.
	// When false (long-note policy), negative totals survive but rows are
	// only eligible at all once they clear NegativeWordGate words.
	ClampNegative    bool
	NegativeWordGate int
}

// Profile names accepted in configuration.
const (
	ProfileStandard = "standard"
	ProfileLongNote = "longnote"
)

var tier1Phrases = []string{
	"i love you",
	"love you so much",
	"i miss you",
	"i adore you",
	"love of my life",
	"mean the world to me",
	"thinking of you",
	"can't wait to see you",
}

var tier2Words = []string{
	"love", "beautiful", "gorgeous", "amazing", "wonderful",
	"perfect", "happy", "heart", "kiss", "sweetheart", "darling",
}

var tier3Words = []string{
	"forever", "always", "together", "future", "someday",
	"marry", "family", "home", "dream", "years",
}

var logisticsEntries = []string{
	"groceries", "errand", "errands", "appointment", "meeting",
	"schedule", "reschedule", "dentist", "laundry", "bills",
	"sorry", "apologize", "running late", "pick up", "drop off",
}

var positiveEmotions = []string{
	"love", "happy", "joy", "excited", "grateful",
}

func standardProfile() Profile {
	return Profile{
		Name:             ProfileStandard,
		Tier1Phrases:     tier1Phrases,
		Tier2Words:       tier2Words,
		Tier3Words:       tier3Words,
		Tier1Weight:      10,
		Tier2Weight:      5,
		Tier3Weight:      2,
		Logistics:        logisticsEntries,
		LogisticsPenalty: 4,
		LengthBonuses: []LengthBonus{
			{MinWords: 50, Bonus: 8},
			{MinWords: 25, Bonus: 5},
			{MinWords: 10, Bonus: 2},
		},
		PositiveEmotions: positiveEmotions,
		EmotionBonus:     5,
		ClampNegative:    true,
	}
}

func longNoteProfile() Profile {
	return Profile{
		Name:             ProfileLongNote,
		Tier1Phrases:     tier1Phrases,
		Tier2Words:       tier2Words,
		Tier3Words:       tier3Words,
		Tier1Weight:      10,
		Tier2Weight:      5,
		Tier3Weight:      2,
		Logistics:        logisticsEntries,
		LogisticsPenalty: 4,
		LengthBonuses: []LengthBonus{
			{MinWords: 100, Bonus: 15},
			{MinWords: 50, Bonus: 8},
			{MinWords: 25, Bonus: 5},
		},
		PositiveEmotions: positiveEmotions,
		EmotionBonus:     5,
		ClampNegative:    false,
		NegativeWordGate: 40,
	}
}

// ByName returns the named built-in profile.
func ByName(name string) (Profile, error) {
	switch name {
	case ProfileStandard, "":
		return standardProfile(), nil
	case ProfileLongNote:
		return longNoteProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown scoring profile %q", name)
	}
}

// Scored reports whether the profile writes the extended candidate columns.
func (p Profile) Scored() bool {
	return p.Name == ProfileLongNote
}
