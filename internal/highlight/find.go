package highlight

import (
	"strings"
	"unicode"
)

// Find returns one interval per case-insensitive occurrence of each term in text,
// in term order and then text order. Blank terms are ignored. Occurrences may overlap.
func Find(text string, terms []string) []Interval {
	haystack := []rune(text)
	found := []Interval{}

	for _, term := range terms {
		needle := []rune(strings.TrimSpace(term))
		if len(needle) == 0 || len(needle) > len(haystack) {
			continue
		}
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if foldEqual(haystack[i:i+len(needle)], needle) {
				found = append(found, Interval{Start: i, Length: len(needle)})
			}
		}
	}

	return found
}

func foldEqual(a, b []rune) bool {
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !sameFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameFold(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// ParseTerms splits a comma separated query such as "paris, lyon" into terms.
func ParseTerms(q string) []string {
	terms := []string{}
	for _, t := range strings.Split(q, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
