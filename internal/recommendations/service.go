package recommendations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedback-backend/internal/scoring"
)

// Service holds the recommendation collection and governs scoring and
// lifecycle transitions. Recompute and validate are mutually exclusive
// critical sections over the same course's recommendations.
type Service struct {
	Repo Repo

	mu       sync.Mutex
	inFlight map[string]bool
	locks    map[string]*sync.Mutex
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{
		Repo:     repo,
		inFlight: make(map[string]bool),
		locks:    make(map[string]*sync.Mutex),
	}
}

// courseLock returns the mutex guarding one course's recommendation set.
func (s *Service) courseLock(courseID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[courseID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[courseID] = lock
	}
	return lock
}

// CreateInput carries the fields surfaced by upstream analysis.
type CreateInput struct {
	CourseID      string
	Title         string
	Description   string
	Category      string
	Factors       scoring.FactorScores
	IsShowStopper bool
}

// Create stores a new pending recommendation, scored once with the given
// weights.
func (s *Service) Create(ctx context.Context, in CreateInput, weights scoring.WeightVector) (Recommendation, error) {
	if strings.TrimSpace(in.CourseID) == "" {
		return Recommendation{}, errors.New("courseID is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return Recommendation{}, errors.New("title is required")
	}

	score, err := scoring.Score(in.Factors, weights)
	if err != nil {
		return Recommendation{}, err
	}

	now := time.Now().UTC()
	rec := Recommendation{
		ID:            uuid.NewString(),
		CourseID:      in.CourseID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Factors:       in.Factors,
		PriorityScore: score,
		IsShowStopper: in.IsShowStopper,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Recommendation{}, err
	}
	return rec, nil
}

// Get returns a recommendation by ID.
func (s *Service) Get(ctx context.Context, recID string) (Recommendation, error) {
	if recID == "" {
		return Recommendation{}, errors.New("recID is required")
	}
	return s.Repo.GetByID(ctx, recID)
}

// List returns a course's recommendations in presentation order:
// show-stoppers first, then descending priority score, insertion order on
// ties.
func (s *Service) List(ctx context.Context, courseID string) ([]Recommendation, error) {
	if courseID == "" {
		return nil, errors.New("courseID is required")
	}
	recs, err := s.Repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	SortForPresentation(recs)
	return recs, nil
}

// SortForPresentation orders recommendations for listing. The input slice is
// expected in insertion order, which the stable sort preserves on ties.
func SortForPresentation(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.IsShowStopper != b.IsShowStopper {
			return a.IsShowStopper
		}
		return a.PriorityScore > b.PriorityScore
	})
}

// Recompute rescores every recommendation of a course with one weight vector
// in one atomic batch. Invalid weights reject the batch before any score is
// touched; a concurrent recompute for the same course is rejected with
// ErrRecomputeInProgress.
func (s *Service) Recompute(ctx context.Context, courseID string, weights scoring.WeightVector) ([]Recommendation, error) {
	if courseID == "" {
		return nil, errors.New("courseID is required")
	}
	if err := s.acquire(courseID); err != nil {
		return nil, err
	}
	defer s.release(courseID)

	lock := s.courseLock(courseID)
	lock.Lock()
	defer lock.Unlock()

	recs, err := s.Repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// Score everything before writing anything.
	scores := make(map[string]float64, len(recs))
	for i := range recs {
		score, err := scoring.Score(recs[i].Factors, weights)
		if err != nil {
			return nil, fmt.Errorf("recompute %s: %w", recs[i].ID, err)
		}
		scores[recs[i].ID] = score
	}

	now := time.Now().UTC()
	if err := s.Repo.ReplaceScores(ctx, scores, now); err != nil {
		return nil, err
	}

	for i := range recs {
		recs[i].PriorityScore = scores[recs[i].ID]
		recs[i].UpdatedAt = now
	}
	SortForPresentation(recs)
	return recs, nil
}

// Validate confirms a pending recommendation. Re-validating an already
// validated recommendation is rejected with ErrInvalidTransition rather than
// silently overwriting the earlier validator, the stricter of the two
// plausible contracts.
func (s *Service) Validate(ctx context.Context, recID, notes, validatorID string) (Recommendation, error) {
	if recID == "" {
		return Recommendation{}, errors.New("recID is required")
	}
	if strings.TrimSpace(validatorID) == "" {
		return Recommendation{}, errors.New("validatorID is required")
	}
	if strings.TrimSpace(notes) == "" {
		return Recommendation{}, ErrEmptyNotes
	}

	rec, err := s.Repo.GetByID(ctx, recID)
	if err != nil {
		return Recommendation{}, err
	}

	// Validate and recompute never interleave on the same course.
	lock := s.courseLock(rec.CourseID)
	lock.Lock()
	defer lock.Unlock()

	rec, err = s.Repo.GetByID(ctx, recID)
	if err != nil {
		return Recommendation{}, err
	}
	if rec.Status != StatusPending {
		return Recommendation{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.Status, StatusValidated)
	}

	rec.Status = StatusValidated
	rec.Validator = validatorID
	rec.ValidationNotes = strings.TrimSpace(notes)
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, rec); err != nil {
		return Recommendation{}, err
	}
	return rec, nil
}

// Transition moves a recommendation along the lifecycle graph.
func (s *Service) Transition(ctx context.Context, recID, status string) (Recommendation, error) {
	if recID == "" {
		return Recommendation{}, errors.New("recID is required")
	}
	if !ValidStatus(status) {
		return Recommendation{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	if status == StatusValidated {
		// Validation carries notes and a validator; it has its own entry point.
		return Recommendation{}, fmt.Errorf("%w: use validate for %s", ErrInvalidTransition, StatusValidated)
	}

	rec, err := s.Repo.GetByID(ctx, recID)
	if err != nil {
		return Recommendation{}, err
	}

	lock := s.courseLock(rec.CourseID)
	lock.Lock()
	defer lock.Unlock()

	rec, err = s.Repo.GetByID(ctx, recID)
	if err != nil {
		return Recommendation{}, err
	}
	if !TransitionAllowed(rec.Status, status) {
		return Recommendation{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.Status, status)
	}

	rec.Status = status
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, rec); err != nil {
		return Recommendation{}, err
	}
	return rec, nil
}

// RecomputeAll rescores every course, used by the scheduled worker. Courses
// already being recomputed are skipped, not retried.
func (s *Service) RecomputeAll(ctx context.Context, weights scoring.WeightVector) (int, error) {
	courseIDs, err := s.Repo.ListCourseIDs(ctx)
	if err != nil {
		return 0, err
	}
	rescored := 0
	for _, courseID := range courseIDs {
		if _, err := s.Recompute(ctx, courseID, weights); err != nil {
			if errors.Is(err, ErrRecomputeInProgress) {
				continue
			}
			return rescored, fmt.Errorf("course %s: %w", courseID, err)
		}
		rescored++
	}
	return rescored, nil
}

func (s *Service) acquire(courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[courseID] {
		return ErrRecomputeInProgress
	}
	s.inFlight[courseID] = true
	return nil
}

func (s *Service) release(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, courseID)
}
