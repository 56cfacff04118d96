package envvars

import (
	"slices"
	"strings"
)

// foldName returns the canonical case-folded identity of a variable
// name. Folding is applied at every key touchpoint of the store and
// the order calculator so the policy lives in exactly one place.
func foldName(name string) string {
	return strings.ToLower(name)
}

// compareNames orders variable names case-insensitively, breaking ties
// between fold-equal spellings by their literal bytes so sorting is
// total and deterministic.
func compareNames(a, b string) int {
	if c := strings.Compare(foldName(a), foldName(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}

// sortedNames returns the keys of m in case-insensitive lexical order.
func sortedNames[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	slices.SortFunc(names, compareNames)

	return names
}
