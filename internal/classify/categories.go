package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category IDs match the fixed enumerated set in the pattern table.
const (
	CategoryTechnical     = "technical"
	CategoryContent       = "content"
	CategoryInstructional = "instructional"
	CategoryUX            = "ux"
	CategoryEngagement    = "engagement"
)

//go:embed patterns.yaml
var defaultPatterns []byte

// Category is one entry of the static detection table: an ordered list of
// phrase-group patterns plus remediation suggestions. Not mutated at runtime.
type Category struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	BaseEffort  int        `yaml:"base_effort"`
	Patterns    [][]string `yaml:"patterns"`
	Suggestions []string   `yaml:"suggestions"`
}

type patternsFile struct {
	Categories []Category `yaml:"categories"`
	Severity   struct {
		High   []string `yaml:"high"`
		Medium []string `yaml:"medium"`
	} `yaml:"severity"`
}

// Table holds the parsed detection configuration.
type Table struct {
	Categories     []Category
	HighKeywords   []string
	MediumKeywords []string
}

// DefaultTable parses the embedded pattern table.
func DefaultTable() (Table, error) {
	return parseTable(defaultPatterns)
}

// LoadTable reads a pattern table from the given YAML file, falling back to
// the embedded table when path is empty.
func LoadTable(path string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read pattern table: %w", err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (Table, error) {
	var file patternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Table{}, fmt.Errorf("parse pattern table: %w", err)
	}

	table := Table{
		Categories:     file.Categories,
		HighKeywords:   lowerAll(file.Severity.High),
		MediumKeywords: lowerAll(file.Severity.Medium),
	}
	if err := table.validate(); err != nil {
		return Table{}, err
	}
	return table, nil
}

func (t Table) validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("pattern table has no categories")
	}
	seen := make(map[string]bool, len(t.Categories))
	for i := range t.Categories {
		cat := &t.Categories[i]
		cat.ID = strings.ToLower(strings.TrimSpace(cat.ID))
		if cat.ID == "" {
			return fmt.Errorf("category %d has no id", i)
		}
		if seen[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seen[cat.ID] = true
		if cat.BaseEffort < 1 || cat.BaseEffort > 10 {
			return fmt.Errorf("category %q: base_effort %d out of range 1-10", cat.ID, cat.BaseEffort)
		}
		if len(cat.Patterns) == 0 {
			return fmt.Errorf("category %q has no patterns", cat.ID)
		}
		for j, group := range cat.Patterns {
			if len(group) == 0 {
				return fmt.Errorf("category %q: pattern %d is empty", cat.ID, j)
			}
			for k, phrase := range group {
				trimmed := strings.ToLower(strings.TrimSpace(phrase))
				if trimmed == "" {
					return fmt.Errorf("category %q: pattern %d has an empty phrase", cat.ID, j)
				}
				cat.Patterns[j][k] = trimmed
			}
		}
	}
	return nil
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.ToLower(strings.TrimSpace(item)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
