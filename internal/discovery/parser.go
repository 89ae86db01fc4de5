package discovery

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// gtest case declarations, e.g. TEST_F(ProbDistributions, normal_lpdf)
var testCasePattern = regexp.MustCompile(`(?m)^\s*(?:TYPED_TEST|TEST_[FP]|TEST)\s*\(\s*(\w+)\s*,\s*(\w+)\s*\)`)

// Parser extracts test case names from C++ test sources
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases returns the sorted "Suite.Case" names declared in filePath
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	var testCases []string
	for _, match := range testCasePattern.FindAllStringSubmatch(string(content), -1) {
		name := match[1] + "." + match[2]
		if seen[name] {
			continue
		}
		seen[name] = true
		testCases = append(testCases, name)
	}

	sort.Strings(testCases)
	return testCases, nil
}
