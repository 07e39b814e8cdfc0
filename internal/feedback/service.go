package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedback-backend/internal/actions"
	"feedback-backend/internal/classify"
)

// ErrInvalidRating indicates a rating outside the 1-5 scale.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Service contains business logic for feedback ingestion and action rollups.
type Service struct {
	Repo       Repo
	Aggregator *actions.Aggregator
}

// NewService constructs a Service.
func NewService(repo Repo, aggregator *actions.Aggregator) *Service {
	return &Service{Repo: repo, Aggregator: aggregator}
}

// IngestInput carries one review as supplied by upstream sync.
type IngestInput struct {
	PositiveText    string
	ImprovementText string
	ShowStopperText string
	IsShowStopper   bool
	Rating          int
}

// Ingest stores one feedback record for a course.
func (s *Service) Ingest(ctx context.Context, courseID string, in IngestInput) (Feedback, error) {
	if strings.TrimSpace(courseID) == "" {
		return Feedback{}, errors.New("courseID is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return Feedback{}, fmt.Errorf("%w: got %d", ErrInvalidRating, in.Rating)
	}

	fb := Feedback{
		ID:              uuid.NewString(),
		CourseID:        courseID,
		PositiveText:    strings.TrimSpace(in.PositiveText),
		ImprovementText: strings.TrimSpace(in.ImprovementText),
		ShowStopperText: strings.TrimSpace(in.ShowStopperText),
		IsShowStopper:   in.IsShowStopper,
		Rating:          in.Rating,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, fb); err != nil {
		return Feedback{}, err
	}
	return fb, nil
}

// List returns a course's stored feedback.
func (s *Service) List(ctx context.Context, courseID string) ([]Feedback, error) {
	if courseID == "" {
		return nil, errors.New("courseID is required")
	}
	return s.Repo.ListByCourse(ctx, courseID)
}

// Actions classifies the course's full review set and rolls it up into
// ranked action items. Stateless: every call recomputes from scratch.
func (s *Service) Actions(ctx context.Context, courseID string) ([]actions.ActionItem, error) {
	stored, err := s.List(ctx, courseID)
	if err != nil {
		return nil, err
	}
	records := make([]classify.FeedbackRecord, 0, len(stored))
	for _, fb := range stored {
		records = append(records, fb.Record())
	}
	return s.Aggregator.Aggregate(courseID, records), nil
}

// ActionsForAllCourses rolls up every course concurrently, used by reporting
// callers.
func (s *Service) ActionsForAllCourses(ctx context.Context, workers int) (map[string][]actions.ActionItem, error) {
	courseIDs, err := s.Repo.ListCourseIDs(ctx)
	if err != nil {
		return nil, err
	}
	bySubject := make(map[string][]classify.FeedbackRecord, len(courseIDs))
	for _, courseID := range courseIDs {
		stored, err := s.Repo.ListByCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		records := make([]classify.FeedbackRecord, 0, len(stored))
		for _, fb := range stored {
			records = append(records, fb.Record())
		}
		bySubject[courseID] = records
	}
	return s.Aggregator.AggregateAll(ctx, bySubject, workers)
}
