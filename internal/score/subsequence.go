package score

import (
	"math"
	"strings"

	sfuzzy "github.com/sahilm/fuzzy"
)

// Subsequence ranks with sahilm/fuzzy, which rewards matches at word
// boundaries and adjacent characters. Raw scores are squashed into (0, 1).
func Subsequence(value, search string, keywords []string) float64 {
	term := strings.TrimSpace(search)
	if term == "" {
		return exactScore
	}
	candidates := append([]string{value}, keywords...)
	best := 0.0
	for _, match := range sfuzzy.Find(term, candidates) {
		s := squash(match.Score)
		if strings.EqualFold(match.Str, term) {
			s = exactScore
		}
		if match.Index > 0 {
			s *= keywordWeight
		}
		if s > best {
			best = s
		}
	}
	return best
}

func squash(raw int) float64 {
	return 0.05 + 0.9/(1+math.Exp(-float64(raw)/20))
}

// Highlights returns the byte offsets of the characters in text matched by
// search, for rendering emphasis. It returns nil when nothing matches.
func Highlights(text, search string) []int {
	term := strings.TrimSpace(search)
	if term == "" || text == "" {
		return nil
	}
	matches := sfuzzy.Find(term, []string{text})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
