package analyzer

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordCount is one entry of the filename word tally.
type WordCount struct {
	// Word is the normalized (lowercase) token.
	Word string `json:"word"`
	// Count is the number of occurrences across all filenames.
	Count int `json:"count"`
}

// wordTally counts normalized words across filenames. Ties in the top-N
// output resolve by first-encountered order, so callers must feed filenames
// in a deterministic order.
type wordTally struct {
	minLen int
	counts map[string]int
	order  []string // words in first-seen order
}

func newWordTally(minLen int) *wordTally {
	return &wordTally{minLen: minLen, counts: make(map[string]int)}
}

// addFilename tokenizes the base name of path, extension stripped, on
// non-alphanumeric boundaries. Tokens shorter than minLen are dropped.
func (t *wordTally) addFilename(path string) {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, token := range tokens {
		token = strings.ToLower(token)
		if utf8.RuneCountInString(token) < t.minLen {
			continue
		}

		if _, seen := t.counts[token]; !seen {
			t.order = append(t.order, token)
		}

		t.counts[token]++
	}
}

// top returns the n highest-count words. Equal counts keep first-seen order.
func (t *wordTally) top(n int) []WordCount {
	words := make([]WordCount, 0, len(t.order))
	for _, word := range t.order {
		words = append(words, WordCount{Word: word, Count: t.counts[word]})
	}

	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Count > words[j].Count
	})

	if len(words) > n {
		words = words[:n]
	}

	return words
}
