package recommendations

import (
	"time"

	"feedback-backend/internal/scoring"
)

// Lifecycle statuses. Transitions are forward-only; nothing re-enters
// pending.
const (
	StatusPending    = "pending"
	StatusValidated  = "validated"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusDismissed  = "dismissed"
)

// Recommendation is one improvement recommendation for a course.
// PriorityScore is derived by the scoring engine and only changes through a
// recompute pass; Status, Validator and ValidationNotes only change through
// lifecycle transitions.
type Recommendation struct {
	ID              string               `json:"id"`
	CourseID        string               `json:"courseId"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	Factors         scoring.FactorScores `json:"factors"`
	PriorityScore   float64              `json:"priorityScore"`
	IsShowStopper   bool                 `json:"isShowStopper"`
	Status          string               `json:"status"`
	Validator       string               `json:"validator,omitempty"`
	ValidationNotes string               `json:"validationNotes,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

var allowedTransitions = map[string][]string{
	StatusPending:    {StatusValidated, StatusDismissed},
	StatusValidated:  {StatusInProgress},
	StatusInProgress: {StatusResolved},
	StatusResolved:   {},
	StatusDismissed:  {},
}

// TransitionAllowed reports whether a status change is part of the lifecycle
// graph.
func TransitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether the value is a known lifecycle status.
func ValidStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}
