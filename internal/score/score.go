// Package score ranks how well a search term matches an item's searchable
// text. A score above zero keeps the item visible; the magnitude only orders
// matches relative to each other.
package score

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Func scores value (plus optional keywords) against search. Implementations
// must be deterministic and free of side effects.
type Func func(value, search string, keywords []string) float64

const (
	exactScore    = 1.0
	prefixScore   = 0.9
	wordScore     = 0.8
	containsScore = 0.7
	fuzzyCeiling  = 0.6
	keywordWeight = 0.95
)

// Default ranks exact, prefix and word-boundary matches above plain
// substring matches, and those above ordered fuzzy matches. Keywords are
// scored the same way and weighted slightly below the value itself.
func Default(value, search string, keywords []string) float64 {
	term := strings.TrimSpace(search)
	if term == "" {
		return exactScore
	}
	best := rank(value, term)
	for _, kw := range keywords {
		if s := rank(kw, term) * keywordWeight; s > best {
			best = s
		}
	}
	return best
}

func rank(candidate, term string) float64 {
	if candidate == "" {
		return 0
	}
	lc := strings.ToLower(candidate)
	lt := strings.ToLower(term)
	switch {
	case lc == lt:
		return exactScore
	case strings.HasPrefix(lc, lt):
		return prefixScore
	case containsWordPrefix(lc, lt):
		return wordScore
	case strings.Contains(lc, lt):
		return containsScore
	}
	distance := fuzzy.RankMatchNormalizedFold(term, candidate)
	if distance < 0 {
		return 0
	}
	termLen := float64(utf8.RuneCountInString(term))
	return fuzzyCeiling * termLen / (termLen + float64(distance))
}

func containsWordPrefix(candidate, term string) bool {
	for _, word := range strings.FieldsFunc(candidate, isSeparator) {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	return false
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '-', '_', '/', '.', ':':
		return true
	}
	return false
}

var registry = map[string]Func{
	"default":     Default,
	"subsequence": Subsequence,
}

// Lookup returns the scorer registered under name.
func Lookup(name string) (Func, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default, nil
	}
	fn, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown scorer %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

// Names lists the registered scorer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
