package classify

import (
	"sort"
	"strings"
)

// Severity levels for a single feedback record, ordered from worst to best.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// FeedbackRecord is one course review as supplied by upstream ingestion.
// Consumed once per classification call; never retained by the classifier.
type FeedbackRecord struct {
	PositiveText    string `json:"positiveText"`
	ImprovementText string `json:"improvementText"`
	ShowStopperText string `json:"showStopperText"`
	IsShowStopper   bool   `json:"isShowStopper"`
	Rating          int    `json:"rating"`
}

// Classification is the result of classifying one feedback record.
type Classification struct {
	Categories  []string `json:"categories"`
	Severity    string   `json:"severity"`
	Suggestions []string `json:"suggestions"`
}

// Classifier matches feedback text against the static category table.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	table Table
}

// NewClassifier builds a classifier over the given table.
func NewClassifier(table Table) *Classifier {
	return &Classifier{table: table}
}

// Table exposes the detection table, used by the action aggregator for
// per-category effort constants.
func (c *Classifier) Table() Table {
	return c.table
}

// Classify assigns zero or more issue categories and a severity to one
// record. Categories are not mutually exclusive; any matching pattern
// includes its category.
func (c *Classifier) Classify(rec FeedbackRecord) Classification {
	text := strings.ToLower(strings.TrimSpace(rec.ImprovementText + " " + rec.ShowStopperText))

	var categories []string
	suggestions := make(map[string]bool)
	for _, cat := range c.table.Categories {
		if !matchesAny(text, cat.Patterns) {
			continue
		}
		categories = append(categories, cat.ID)
		for _, s := range cat.Suggestions {
			suggestions[s] = true
		}
	}

	return Classification{
		Categories:  categories,
		Severity:    c.severity(rec, text),
		Suggestions: sortedKeys(suggestions),
	}
}

// severity applies the precedence chain: show-stopper flag, high keywords,
// medium keywords, then the rating fallback.
func (c *Classifier) severity(rec FeedbackRecord, text string) string {
	if rec.IsShowStopper {
		return SeverityCritical
	}
	for _, kw := range c.table.HighKeywords {
		if strings.Contains(text, kw) {
			return SeverityHigh
		}
	}
	for _, kw := range c.table.MediumKeywords {
		if strings.Contains(text, kw) {
			return SeverityMedium
		}
	}
	switch {
	case rec.Rating <= 2:
		return SeverityHigh
	case rec.Rating == 3:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// matchesAny reports whether any phrase group matches: every phrase in a
// group must occur in the text.
func matchesAny(text string, patterns [][]string) bool {
	if text == "" {
		return false
	}
	for _, group := range patterns {
		matched := true
		for _, phrase := range group {
			if !strings.Contains(text, phrase) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
