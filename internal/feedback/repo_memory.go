package feedback

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores feedback in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byCourse map[string][]Feedback
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byCourse: make(map[string][]Feedback)}
}

// Create stores the feedback record.
func (r *MemoryRepo) Create(ctx context.Context, fb Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCourse[fb.CourseID] = append(r.byCourse[fb.CourseID], fb)
	return nil
}

// ListByCourse returns the course's feedback in insertion order.
func (r *MemoryRepo) ListByCourse(ctx context.Context, courseID string) ([]Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byCourse[courseID]
	out := make([]Feedback, len(stored))
	copy(out, stored)
	return out, nil
}

// ListCourseIDs returns every course with stored feedback.
func (r *MemoryRepo) ListCourseIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byCourse))
	for courseID := range r.byCourse {
		out = append(out, courseID)
	}
	sort.Strings(out)
	return out, nil
}
