// Package textsim provides the similarity oracle used for near-duplicate
// detection of question texts. All measurements are rune-based so Hebrew
// and other non-ASCII texts are scored correctly.
package textsim

import "strings"

// DuplicateThreshold is the similarity score at or above which two texts
// are considered near-duplicates.
const DuplicateThreshold = 0.85

// minDuplicateLen excludes short strings from duplicate classification.
// Trivial overlaps like "מהו?" would otherwise score as duplicates.
const minDuplicateLen = 20

// screenPrefixLen is the prefix length used by the fast duplicate screen.
const screenPrefixLen = 50

// Normalize produces the canonical fingerprint of a question text.
// Identity of a question is its normalized text alone.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Similarity returns a normalized similarity score in [0.0, 1.0].
// It is symmetric and Similarity(a, a) == 1.0.
//
// The score is (maxLen - editDistance(a, b)) / maxLen where editDistance
// is the classic Levenshtein distance with unit-cost insertions,
// deletions, and substitutions.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}

	d := editDistance(ra, rb)
	return float64(longest-d) / float64(longest)
}

// IsNearDuplicate reports whether two question texts are close enough to
// count as the same question. Inputs are normalized before comparison.
//
// A cheap prefix screen runs first: identical 50-rune prefixes, or one
// text containing the other's 50-rune prefix, is sufficient. Texts that
// pass the screen fall back to the edit-distance similarity threshold.
// Both texts must exceed 20 runes; shorter texts are never duplicates.
func IsNearDuplicate(a, b string) bool {
	a = Normalize(a)
	b = Normalize(b)

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) <= minDuplicateLen || len(rb) <= minDuplicateLen {
		return false
	}

	if prefixScreen(a, b, ra, rb) {
		return true
	}

	return Similarity(a, b) >= DuplicateThreshold
}

// prefixScreen is the fast duplicate check applied before edit distance.
func prefixScreen(a, b string, ra, rb []rune) bool {
	if len(ra) >= screenPrefixLen && len(rb) >= screenPrefixLen {
		if string(ra[:screenPrefixLen]) == string(rb[:screenPrefixLen]) {
			return true
		}
	}
	if len(ra) >= screenPrefixLen && strings.Contains(b, string(ra[:screenPrefixLen])) {
		return true
	}
	if len(rb) >= screenPrefixLen && strings.Contains(a, string(rb[:screenPrefixLen])) {
		return true
	}
	return false
}

// editDistance computes the Levenshtein distance between two rune slices
// using the two-row dynamic programming formulation. O(len(a)*len(b))
// time, O(min) space; question texts are bounded to a few hundred runes
// so this is cheap in practice.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Keep the shorter slice as the row to minimize memory.
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
