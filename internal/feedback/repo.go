package feedback

import (
	"context"
	"errors"
)

// ErrNotFound indicates a missing feedback record.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for feedback records.
type Repo interface {
	Create(ctx context.Context, fb Feedback) error
	// ListByCourse returns a course's feedback in insertion order.
	ListByCourse(ctx context.Context, courseID string) ([]Feedback, error)
	ListCourseIDs(ctx context.Context) ([]string, error)
}
