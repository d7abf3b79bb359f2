package models

import (
	"sort"
	"strings"
)

// DefaultGenres returns the genre names the shared list is seeded with on
// first access.
func DefaultGenres() []string {
	return []string{
		"Classical",
		"Musicals",
		"Film",
		"March",
		"Dance",
		"Latin",
		"Pop",
		"Christmas",
		"Remembrance",
	}
}

// ContainsFold reports whether list contains name ignoring case.
func ContainsFold(list []string, name string) bool {
	for _, g := range list {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

// MergeGenres appends the case-insensitively-new names from incoming to
// current and returns the sorted result along with the names actually added.
// The inputs are not modified.
func MergeGenres(current, incoming []string) (merged, added []string) {
	merged = append(merged, current...)
	for _, name := range incoming {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if !ContainsFold(merged, name) {
			merged = append(merged, name)
			added = append(added, name)
		}
	}
	sort.Strings(merged)
	return merged, added
}
