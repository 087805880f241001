package matcher

import (
	"regexp"
	"sort"
	"strings"
)

// SimilarityThreshold is the minimum token-set score (0-100) a station name
// must reach for a fuzzy match. Tuned against voice-to-text transcripts:
// low enough to absorb one misspelled word ("juidiciary square"), high
// enough to reject unrelated names.
const SimilarityThreshold = 72

var nonWord = regexp.MustCompile(`[^\w\s]`)

// normalize lower-cases a name, strips punctuation, and collapses runs of
// whitespace so that "L'Enfant Plaza" and "lenfant plaza" compare equal.
func normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", " ")
	name = nonWord.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// Similarity scores two names on a 0-100 scale using a token-set ratio:
// both names are normalized and tokenized, and the score is the edit-based
// ratio of the sorted shared tokens joined with each side's sorted
// remainder. Word order does not matter and tokens present in both names
// count fully, which suits spoken station names ("center metro" vs
// "Metro Center").
func Similarity(a, b string) int {
	ta := tokenSet(normalize(a))
	tb := tokenSet(normalize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	left := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	right := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	// Best of the three pairings: shared-only vs each full side, and the
	// two full sides against each other.
	score := ratio(base, left)
	if s := ratio(base, right); s > score {
		score = s
	}
	if s := ratio(left, right); s > score {
		score = s
	}
	return score
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// ratio is a normalized edit-distance score: 100 for equal strings, 0 for
// nothing in common.
func ratio(a, b string) int {
	if a == "" && b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	dist := levenshtein(a, b)
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return (longest - dist) * 100 / longest
}

// levenshtein computes the edit distance between two strings, one row of
// the DP table at a time.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
