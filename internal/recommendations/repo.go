package recommendations

import (
	"context"
	"time"
)

// Repo defines persistence operations for recommendations.
type Repo interface {
	Create(ctx context.Context, rec Recommendation) error
	GetByID(ctx context.Context, recID string) (Recommendation, error)
	// ListByCourse returns recommendations for a course in insertion order.
	ListByCourse(ctx context.Context, courseID string) ([]Recommendation, error)
	ListCourseIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, rec Recommendation) error
	// ReplaceScores persists a batch of priority scores atomically: either
	// every listed recommendation is updated or none are.
	ReplaceScores(ctx context.Context, scores map[string]float64, updatedAt time.Time) error
}
