// Package fuzzy implements the approximate string-matching engine behind
// product search: a serializable index over selected record fields and a
// matcher that ranks typo-tolerant, location-agnostic matches.
package fuzzy

import "strings"

// Normalize lowercases text and collapses runs of whitespace so that
// matching is case- and spacing-insensitive.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokenize splits normalized text into tokens.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// bigrams returns the set of adjacent rune pairs of s with multiplicity.
func bigrams(s string) []string {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	out := make([]string, 0, len(r)-1)
	for i := 0; i < len(r)-1; i++ {
		out = append(out, string(r[i:i+2]))
	}
	return out
}

// diceCoefficient scores the bigram overlap of two strings in [0,1].
func diceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	aPairs := bigrams(a)
	bPairs := bigrams(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	counts := make(map[string]int, len(bPairs))
	for _, p := range bPairs {
		counts[p]++
	}
	shared := 0
	for _, p := range aPairs {
		if counts[p] > 0 {
			shared++
			counts[p]--
		}
	}

	return float64(2*shared) / float64(len(aPairs)+len(bPairs))
}
