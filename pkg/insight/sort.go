package insight

import (
	"sort"
	"unicode"

	"golang.org/x/text/cases"
)

type sortEntry struct {
	value string
	key   string
}

// SortStrings returns a sorted copy of list. Strings are ordered alphabetically
// ignoring case. When caseSensitive is false strings that are equal ignoring
// case keep their relative order. When it is true they are ordered by their
// first differing character, with the capital letter first, so "BAB" sorts
// before "BaB" which sorts before "bab".
func SortStrings(list []string, caseSensitive bool) []string {
	folder := cases.Fold()
	entries := make([]sortEntry, len(list))
	for i, s := range list {
		entries[i] = sortEntry{value: s, key: folder.String(s)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.key != b.key {
			return a.key < b.key
		}

		if !caseSensitive {
			return false
		}

		return capitalFirstLess(a.value, b.value)
	})

	sorted := make([]string, len(entries))
	for i, entry := range entries {
		sorted[i] = entry.value
	}

	return sorted
}

func capitalFirstLess(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		if ra[i] == rb[i] {
			continue
		}

		upperA, upperB := unicode.IsUpper(ra[i]), unicode.IsUpper(rb[i])
		if upperA != upperB {
			return upperA
		}

		return ra[i] < rb[i]
	}

	return len(ra) < len(rb)
}
