package recommendations

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores recommendations in memory and is safe for concurrent
// use.
type MemoryRepo struct {
	mu       sync.RWMutex
	byID     map[string]Recommendation
	byCourse map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:     make(map[string]Recommendation),
		byCourse: make(map[string][]string),
	}
}

// Create stores the recommendation.
func (r *MemoryRepo) Create(ctx context.Context, rec Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	r.byCourse[rec.CourseID] = append(r.byCourse[rec.CourseID], rec.ID)
	return nil
}

// GetByID returns a recommendation by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, recID string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[recID]
	if !ok {
		return Recommendation{}, ErrNotFound
	}
	return rec, nil
}

// ListByCourse returns the course's recommendations in insertion order.
func (r *MemoryRepo) ListByCourse(ctx context.Context, courseID string) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byCourse[courseID]
	out := make([]Recommendation, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// ListCourseIDs returns every course with at least one recommendation.
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

// Update replaces an existing recommendation.
func (r *MemoryRepo) Update(ctx context.Context, rec Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

// ReplaceScores applies a batch of priority scores under one lock; a missing
// ID fails the whole batch before anything is written.
func (r *MemoryRepo) ReplaceScores(ctx context.Context, scores map[string]float64, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range scores {
		if _, ok := r.byID[id]; !ok {
			return ErrNotFound
		}
	}
	for id, score := range scores {
		rec := r.byID[id]
		rec.PriorityScore = score
		rec.UpdatedAt = updatedAt
		r.byID[id] = rec
	}
	return nil
}
