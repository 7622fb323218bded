package textsim

import (
	"strings"
	"testing"
)

func TestSimilarity_Identity(t *testing.T) {
	cases := []string{
		"",
		"short",
		"What is the definition of an agent under the law?",
		"מה ההגדרה של מתווך לפי החוק?",
	}
	for _, s := range cases {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "Which of the following is required for a brokerage license?"
	b := "Which of the following is needed for a brokerage license?"

	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("similarity is not symmetric: %v vs %v", Similarity(a, b), Similarity(b, a))
	}
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"abc", "xyz"},
		{"", "nonempty"},
		{"aaaa", "aaab"},
		{"completely different text", "nothing alike whatsoever!!"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestSimilarity_KnownDistance(t *testing.T) {
	// "kitten" -> "sitting": distance 3, max len 7.
	want := float64(7-3) / 7
	if got := Similarity("kitten", "sitting"); got != want {
		t.Errorf("Similarity(kitten, sitting) = %v, want %v", got, want)
	}
}

func TestIsNearDuplicate_HebrewOneWordVariation(t *testing.T) {
	a := "מה ההגדרה של מתווך לפי החוק?"
	b := "מה ההגדרה של מתווך על פי החוק?"

	if !IsNearDuplicate(a, b) {
		t.Errorf("expected %q and %q to be near-duplicates (similarity %v)",
			a, b, Similarity(a, b))
	}
}

func TestIsNearDuplicate_ShortStringsExempt(t *testing.T) {
	// Identical, but at or under 20 runes: never duplicates.
	a := "What is 2 + 2?"
	if IsNearDuplicate(a, a) {
		t.Error("short strings must not classify as duplicates")
	}

	// Exactly 20 runes is still exempt; the rule is strictly greater.
	s := strings.Repeat("x", 20)
	if IsNearDuplicate(s, s) {
		t.Error("20-rune strings must not classify as duplicates")
	}
	s21 := strings.Repeat("x", 21)
	if !IsNearDuplicate(s21, s21) {
		t.Error("21-rune identical strings should classify as duplicates")
	}
}

func TestIsNearDuplicate_PrefixScreen(t *testing.T) {
	prefix := strings.Repeat("a", 50)

	// Identical 50-rune prefixes with very different tails.
	a := prefix + strings.Repeat(" tail one", 20)
	b := prefix + strings.Repeat(" something else entirely", 20)
	if !IsNearDuplicate(a, b) {
		t.Error("identical 50-rune prefixes should fire the fast screen")
	}

	// One string containing the other's 50-rune prefix mid-text.
	c := "leading words before the repeated part " + prefix + " and after"
	if !IsNearDuplicate(a, c) {
		t.Error("containment of the 50-rune prefix should fire the fast screen")
	}
}

func TestIsNearDuplicate_Normalization(t *testing.T) {
	a := "  Which statute governs real estate brokerage in Israel?  "
	b := "which statute governs real estate brokerage in israel?"
	if !IsNearDuplicate(a, b) {
		t.Error("case and whitespace must not defeat duplicate detection")
	}
}

func TestIsNearDuplicate_DistinctQuestions(t *testing.T) {
	a := "Which body issues brokerage licenses under the statute?"
	b := "What is the maximum fine for unlicensed brokerage activity?"
	if IsNearDuplicate(a, b) {
		t.Errorf("distinct questions misclassified as duplicates (similarity %v)",
			Similarity(a, b))
	}
}

func TestEditDistance_Basics(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"שלום", "שלום", 0},
		{"שלום", "שלוים", 1},
	}
	for _, c := range cases {
		if got := editDistance([]rune(c.a), []rune(c.b)); got != c.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
