package actions

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"feedback-backend/internal/classify"
)

// Priority labels for action items, derived from the impact/effort ratio.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	maxExampleSnippets = 3
	snippetMaxLen      = 120
)

// ActionItem is a category-level rollup of classified feedback for one
// course. Regenerated in full on every aggregation call.
type ActionItem struct {
	SubjectID          string   `json:"subjectId"`
	CategoryID         string   `json:"categoryId"`
	CategoryName       string   `json:"categoryName"`
	Description        string   `json:"description"`
	Count              int      `json:"count"`
	Impact             int      `json:"impact"`
	Effort             int      `json:"effort"`
	PriorityScore      float64  `json:"priorityScore"`
	PriorityLabel      string   `json:"priorityLabel"`
	ExampleSnippets    []string `json:"exampleSnippets"`
	SuggestedSolutions []string `json:"suggestedSolutions"`
}

// Aggregator rolls classified feedback up into ranked action items.
type Aggregator struct {
	classifier *classify.Classifier
}

// NewAggregator constructs an Aggregator over the given classifier.
func NewAggregator(classifier *classify.Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

type categoryAccumulator struct {
	count       int
	snippets    []string
	suggestions map[string]bool
}

// Aggregate classifies every record and produces one action item per
// category with matches, ranked by the impact/effort heuristic. The
// heuristic deliberately favors frequently reported, low-remediation-cost
// categories over rare expensive ones.
func (a *Aggregator) Aggregate(subjectID string, records []classify.FeedbackRecord) []ActionItem {
	if len(records) == 0 {
		return []ActionItem{}
	}

	table := a.classifier.Table()
	catSuggestions := make(map[string][]string, len(table.Categories))
	for _, cat := range table.Categories {
		catSuggestions[cat.ID] = cat.Suggestions
	}

	accs := make(map[string]*categoryAccumulator)
	for _, rec := range records {
		result := a.classifier.Classify(rec)
		if len(result.Categories) == 0 {
			continue
		}
		snippet := snippetFor(rec)
		for _, catID := range result.Categories {
			acc, ok := accs[catID]
			if !ok {
				acc = &categoryAccumulator{suggestions: make(map[string]bool)}
				accs[catID] = acc
			}
			acc.count++
			if snippet != "" && len(acc.snippets) < maxExampleSnippets {
				acc.snippets = append(acc.snippets, snippet)
			}
			// Only the matched category's own remediation list; a record
			// matching two categories must not cross-pollinate their items.
			for _, s := range catSuggestions[catID] {
				acc.suggestions[s] = true
			}
		}
	}

	total := len(records)
	items := make([]ActionItem, 0, len(accs))
	for _, cat := range table.Categories {
		acc, ok := accs[cat.ID]
		if !ok || acc.count == 0 {
			continue
		}
		impact := impactFor(acc.count, total)
		effort := effortFor(cat.BaseEffort, acc.count)
		score := float64(impact) / float64(effort)
		items = append(items, ActionItem{
			SubjectID:          subjectID,
			CategoryID:         cat.ID,
			CategoryName:       cat.Name,
			Description:        describeItem(cat.Name, acc.count, total),
			Count:              acc.count,
			Impact:             impact,
			Effort:             effort,
			PriorityScore:      score,
			PriorityLabel:      priorityLabel(score),
			ExampleSnippets:    acc.snippets,
			SuggestedSolutions: sortedSuggestions(acc.suggestions),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})
	return items
}

// impactFor scales reporting frequency to [1,10] with a bonus for widely
// reported issues.
func impactFor(count, total int) int {
	frequency := float64(count) / float64(total)
	impact := int(math.Floor(frequency * 10))
	if count > 5 {
		impact += 2
	}
	return clampInt(impact, 1, 10)
}

// effortFor scales the category's base remediation effort by how widespread
// the issue is.
func effortFor(baseEffort, count int) int {
	multiplier := 1.0
	switch {
	case count > 10:
		multiplier = 1.5
	case count > 5:
		multiplier = 1.2
	}
	effort := int(math.Floor(float64(baseEffort) * multiplier))
	return clampInt(effort, 1, 10)
}

func priorityLabel(score float64) string {
	switch {
	case score >= 2.5:
		return PriorityUrgent
	case score >= 1.5:
		return PriorityHigh
	case score >= 0.75:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func describeItem(categoryName string, count, total int) string {
	noun := "reviews"
	if count == 1 {
		noun = "review"
	}
	return fmt.Sprintf("%s reported in %d of %d %s", categoryName, count, total, noun)
}

func snippetFor(rec classify.FeedbackRecord) string {
	text := strings.TrimSpace(rec.ImprovementText)
	if text == "" {
		text = strings.TrimSpace(rec.ShowStopperText)
	}
	if text == "" {
		return ""
	}
	if len(text) > snippetMaxLen {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := snippetMaxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = strings.TrimSpace(text[:cut]) + "..."
	}
	return text
}

func sortedSuggestions(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
