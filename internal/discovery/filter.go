package discovery

import (
	"path/filepath"
	"strings"
)

// Filter narrows test sources by file name
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the test sources whose base name matches pattern.
// Patterns with * or ? are glob-matched first; if that fails, every
// non-wildcard fragment must appear in the name ("*math*prob*"). Plain
// patterns are substring matches. An empty pattern keeps everything.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string
	for _, test := range tests {
		if matchName(filepath.Base(filepath.ToSlash(test)), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	fragments := 0
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if !strings.Contains(name, part) {
			return false
		}
		fragments++
	}
	return fragments > 0
}
