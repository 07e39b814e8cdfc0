package recommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedback-backend/internal/scoring"
)

func seedRecommendation(t *testing.T, svc *Service, courseID string, factors scoring.FactorScores, showStopper bool) Recommendation {
	t.Helper()
	rec, err := svc.Create(context.Background(), CreateInput{
		CourseID:      courseID,
		Title:         "Fix reported issue",
		Description:   "derived from learner feedback",
		Category:      "technical",
		Factors:       factors,
		IsShowStopper: showStopper,
	}, scoring.DefaultWeights())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return rec
}

func defaultFactors() scoring.FactorScores {
	return scoring.FactorScores{Impact: 80, Urgency: 60, Effort: 30, Strategic: 50, Trend: 40}
}

func TestCreateScoresWithDefaultWeights(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	if rec.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", rec.Status)
	}
	if rec.PriorityScore != 66 {
		t.Fatalf("expected initial score 66, got %g", rec.PriorityScore)
	}
}

func TestValidateRequiresNotes(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	if _, err := svc.Validate(context.Background(), rec.ID, "   ", "u1"); !errors.Is(err, ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}
}

func TestValidateTransitionsPendingRecommendation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	validated, err := svc.Validate(context.Background(), rec.ID, "Confirmed issue", "u1")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validated.Status != StatusValidated {
		t.Fatalf("expected validated status, got %q", validated.Status)
	}
	if validated.Validator != "u1" || validated.ValidationNotes != "Confirmed issue" {
		t.Fatalf("validator fields not set: %+v", validated)
	}
}

func TestRevalidationRejected(t *testing.T) {
	// The behavior observed in earlier revisions silently overwrote the
	// first validator on a second validate call; this test pins the
	// stricter contract of rejecting re-validation outright.
	svc := NewService(NewMemoryRepo())
	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	if _, err := svc.Validate(context.Background(), rec.ID, "Confirmed issue", "u1"); err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	_, err := svc.Validate(context.Background(), rec.ID, "Confirmed again", "u2")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	stored, err := svc.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Validator != "u1" {
		t.Fatalf("first validator overwritten: %q", stored.Validator)
	}
}

func TestTransitionGraph(t *testing.T) {
	cases := []struct {
		name    string
		path    []string
		wantErr bool
	}{
		{"full_lifecycle", []string{StatusInProgress, StatusResolved}, false},
		{"skip_to_resolved", []string{StatusResolved}, true},
		{"dismiss_after_validate", []string{StatusDismissed}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(NewMemoryRepo())
			rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)
			if _, err := svc.Validate(context.Background(), rec.ID, "ok", "u1"); err != nil {
				t.Fatalf("Validate: %v", err)
			}

			var err error
			for _, status := range tc.path {
				_, err = svc.Transition(context.Background(), rec.ID, status)
				if err != nil {
					break
				}
			}
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTransitionNeverReentersPending(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	if _, err := svc.Transition(context.Background(), rec.ID, StatusDismissed); err != nil {
		t.Fatalf("Transition to dismissed: %v", err)
	}
	if _, err := svc.Transition(context.Background(), rec.ID, StatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestTransitionToValidatedRequiresValidateCall(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	if _, err := svc.Transition(context.Background(), rec.ID, StatusValidated); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRecomputeReplacesScores(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	rec := seedRecommendation(t, svc, "course-1", defaultFactors(), false)

	// Weighting urgency alone changes the score to round(60) = 60.
	recs, err := svc.Recompute(context.Background(), "course-1", scoring.WeightVector{Urgency: 1})
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID {
		t.Fatalf("unexpected recompute result: %+v", recs)
	}
	if recs[0].PriorityScore != 60 {
		t.Fatalf("expected score 60, got %g", recs[0].PriorityScore)
	}
}

func TestRecomputeAtomicOnInvalidWeights(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	first := seedRecommendation(t, svc, "course-1", defaultFactors(), false)
	second := seedRecommendation(t, svc, "course-1", scoring.FactorScores{Impact: 10, Urgency: 10, Effort: 90, Strategic: 10, Trend: 10}, false)

	_, err := svc.Recompute(context.Background(), "course-1", scoring.WeightVector{})
	if !errors.Is(err, scoring.ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights, got %v", err)
	}

	for _, seeded := range []Recommendation{first, second} {
		stored, err := svc.Get(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if stored.PriorityScore != seeded.PriorityScore {
			t.Fatalf("score changed after rejected recompute: %g != %g", stored.PriorityScore, seeded.PriorityScore)
		}
	}
}

// blockingRepo parks ListByCourse until released, so a second recompute can
// be issued while the first is in flight.
type blockingRepo struct {
	*MemoryRepo
	entered chan struct{}
	release chan struct{}
}

func (r *blockingRepo) ListByCourse(ctx context.Context, courseID string) ([]Recommendation, error) {
	r.entered <- struct{}{}
	<-r.release
	return r.MemoryRepo.ListByCourse(ctx, courseID)
}

func TestConcurrentRecomputeRejected(t *testing.T) {
	repo := &blockingRepo{
		MemoryRepo: NewMemoryRepo(),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	svc := NewService(repo)

	rec := Recommendation{
		ID:        "rec-1",
		CourseID:  "course-1",
		Title:     "Fix reported issue",
		Factors:   defaultFactors(),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.MemoryRepo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Recompute(context.Background(), "course-1", scoring.DefaultWeights())
		firstDone <- err
	}()

	<-repo.entered
	_, err := svc.Recompute(context.Background(), "course-1", scoring.DefaultWeights())
	if !errors.Is(err, ErrRecomputeInProgress) {
		t.Fatalf("expected ErrRecomputeInProgress, got %v", err)
	}

	close(repo.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first recompute failed: %v", err)
	}
}

func TestListSortPolicy(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	low := seedRecommendation(t, svc, "course-1", scoring.FactorScores{Impact: 10, Urgency: 10, Effort: 90, Strategic: 10, Trend: 10}, false)
	high := seedRecommendation(t, svc, "course-1", scoring.FactorScores{Impact: 95, Urgency: 95, Effort: 5, Strategic: 95, Trend: 95}, false)
	stopperLow := seedRecommendation(t, svc, "course-1", scoring.FactorScores{Impact: 5, Urgency: 5, Effort: 95, Strategic: 5, Trend: 5}, true)

	recs, err := svc.List(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	// The show-stopper outranks everything despite its low score.
	if recs[0].ID != stopperLow.ID {
		t.Fatalf("expected show-stopper first, got %q", recs[0].ID)
	}
	if recs[1].ID != high.ID || recs[2].ID != low.ID {
		t.Fatalf("non-stoppers not in score order: %q, %q", recs[1].ID, recs[2].ID)
	}
}

func TestListTiesKeepInsertionOrder(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	factors := defaultFactors()
	first := seedRecommendation(t, svc, "course-1", factors, false)
	second := seedRecommendation(t, svc, "course-1", factors, false)

	recs, err := svc.List(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if recs[0].ID != first.ID || recs[1].ID != second.ID {
		t.Fatalf("tie did not keep insertion order: %q, %q", recs[0].ID, recs[1].ID)
	}
}

func TestRecomputeAll(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	seedRecommendation(t, svc, "course-1", defaultFactors(), false)
	seedRecommendation(t, svc, "course-2", defaultFactors(), false)

	rescored, err := svc.RecomputeAll(context.Background(), scoring.DefaultWeights())
	if err != nil {
		t.Fatalf("RecomputeAll: %v", err)
	}
	if rescored != 2 {
		t.Fatalf("expected 2 courses rescored, got %d", rescored)
	}
}
