// Package search implements the in-memory ranked matcher used by contact
// queries. It is read-only: callers pass the current collection snapshot and
// receive a filtered, relevance-ordered copy.
package search

import (
	"sort"
	"strings"

	"github.com/ekazarova/rolodex/internal/models"
)

// Relevance tiers, best match first. A score of zero means no match and the
// contact is dropped from the result.
const (
	scoreEqual      = 100.0
	scorePrefix     = 80.0
	scoreWordPrefix = 60.0
	scoreContains   = 50.0
	scoreTypo       = 30.0
	scoreSubseq     = 10.0
)

// Rank filters and orders contacts against query.
//
// An empty query returns the input unchanged. Otherwise contacts are matched
// case-insensitively against first+last, scored into tiers (exact, prefix,
// word prefix, substring, small-edit-distance word, subsequence), and
// returned in descending score order. Ties keep their original position.
func Rank(contacts []models.Contact, query string) []models.Contact {
	q := normalize(query)
	if q == "" {
		return contacts
	}

	type ranked struct {
		contact models.Contact
		score   float64
	}

	matched := make([]ranked, 0, len(contacts))
	for _, c := range contacts {
		s := score(q, normalize(c.DisplayName()))
		if s > 0 {
			matched = append(matched, ranked{contact: c, score: s})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	result := make([]models.Contact, len(matched))
	for i, m := range matched {
		result[i] = m.contact
	}
	return result
}

// score rates how well the normalized query matches the normalized name.
// Returns 0 when the name does not clear the lowest tier.
func score(query, name string) float64 {
	if name == "" {
		return 0
	}
	if name == query {
		return scoreEqual
	}
	if strings.HasPrefix(name, query) {
		return scorePrefix
	}

	words := strings.Fields(name)
	for _, w := range words {
		if strings.HasPrefix(w, query) {
			return scoreWordPrefix
		}
	}
	if strings.Contains(name, query) {
		return scoreContains
	}

	threshold := typoThreshold(query)
	for _, w := range words {
		if d := levenshtein(query, w); d <= threshold {
			return scoreTypo - float64(d)*5
		}
	}

	if isSubsequence(query, name) {
		return scoreSubseq
	}
	return 0
}

// typoThreshold is the maximum edit distance tolerated for a whole-word
// match, scaled with query length.
func typoThreshold(query string) int {
	switch {
	case len(query) <= 3:
		return 1
	case len(query) >= 8:
		return 3
	default:
		return 2
	}
}

// levenshtein computes the edit distance between two strings: the number of
// single-rune insertions, deletions, or substitutions turning one into the
// other.
func levenshtein(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// isSubsequence reports whether every rune of query appears in name in
// order (not necessarily adjacent).
func isSubsequence(query, name string) bool {
	qr := []rune(query)
	i := 0
	for _, r := range name {
		if i < len(qr) && r == qr[i] {
			i++
		}
	}
	return i == len(qr)
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalize lowercases and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
