package scoring_test

import (
	"strings"
	"testing"

	"serenade/internal/scoring"
)

func mustProfile(t *testing.T, name string) scoring.Profile {
	t.Helper()
	profile, err := scoring.ByName(name)
	if err != nil {
		t.Fatalf("ByName(%q): %v", name, err)
	}
	return profile
}

func TestLoveNoteOutscoresLogistics(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	note := profile.Score("I love you so much, it's crazy", "love")
	logistics := profile.Score("pick up groceries at 5pm", "")

	if note <= logistics {
		t.Fatalf("love note scored %.1f, logistics scored %.1f", note, logistics)
	}
}

func TestMonotonicTier1(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	base := "what a wonderful evening that was"
	with := base + " and i miss you already"

	if profile.Score(with, "") < profile.Score(base, "") {
		t.Fatalf("adding a tier-1 phrase lowered the score: %.1f < %.1f",
			profile.Score(with, ""), profile.Score(base, ""))
	}
}

func TestRepeatedKeywordCountsOnce(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	once := profile.Score("you are beautiful", "")
	thrice := profile.Score("beautiful beautiful beautiful you are", "")
	if once != thrice {
		t.Fatalf("repeated keyword double-counted: %.1f vs %.1f", once, thrice)
	}
}

func TestDistinctKeywordsAllAdd(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	one := profile.Score("you are beautiful", "")
	two := profile.Score("you are beautiful and amazing", "")
	if two <= one {
		t.Fatalf("distinct keywords did not accumulate: %.1f <= %.1f", two, one)
	}
}

func TestStandardClampsNegative(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	got := profile.Score("sorry, need to reschedule the dentist appointment", "")
	if got != 0 {
		t.Fatalf("expected clamp to zero, got %.1f", got)
	}
}

func TestLongNoteKeepsNegative(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileLongNote)

	got := profile.Score("sorry, need to reschedule the dentist appointment", "")
	if got >= 0 {
		t.Fatalf("expected negative score to survive, got %.1f", got)
	}
}

func TestLongNoteNegativeWordGate(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileLongNote)

	short := "sorry about the meeting"
	if profile.Eligible(profile.Score(short, ""), scoring.WordCount(short), -100, 0) {
		t.Fatal("short negative row should not clear the word gate")
	}

	long := strings.Repeat("thinking through our plans for the house today ", 6) + "sorry about the meeting"
	words := scoring.WordCount(long)
	if words < 40 {
		t.Fatalf("fixture too short: %d words", words)
	}
	if !profile.Eligible(-1, words, -100, 0) {
		t.Fatal("long negative row should clear the word gate")
	}
}

func TestEmotionBonusOnlyForPositiveTags(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	text := "what a lovely quiet morning together"
	if profile.Score(text, "love") <= profile.Score(text, "") {
		t.Fatal("positive emotion tag should add a bonus")
	}
	if profile.Score(text, "bored") != profile.Score(text, "") {
		t.Fatal("unknown emotion tag should add nothing")
	}
}

func TestUnicodeNormalizationMatches(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileStandard)

	// "café" with a combining accent still tokenizes cleanly around keywords.
	composed := "you are beautiful at the café"
	decomposed := "you are beautiful at the café"
	if profile.Score(composed, "") != profile.Score(decomposed, "") {
		t.Fatal("NFC normalization should make both forms score identically")
	}
}

func TestKeywordsSplitByTier(t *testing.T) {
	profile := mustProfile(t, scoring.ProfileLongNote)

	emotional, thoughtful := profile.Keywords("i love you, here's to our future together")
	if len(emotional) == 0 || emotional[0] != "i love you" {
		t.Fatalf("expected tier-1 phrase in emotional keywords: %v", emotional)
	}
	joined := strings.Join(thoughtful, "|")
	if !strings.Contains(joined, "future") || !strings.Contains(joined, "together") {
		t.Fatalf("expected tier-3 words in thoughtful keywords: %v", thoughtful)
	}
}

func TestUnknownProfile(t *testing.T) {
	if _, err := scoring.ByName("mystery"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
