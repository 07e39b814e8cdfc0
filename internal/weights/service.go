package weights

import (
	"context"
	"errors"
	"time"

	"feedback-backend/internal/scoring"
)

// Service governs the stored weight configuration.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Current returns the configured weight vector, falling back to the default
// distribution when nothing has been stored yet.
func (s *Service) Current(ctx context.Context) (scoring.WeightVector, error) {
	cfg, err := s.Repo.Get(ctx)
	if errors.Is(err, ErrNotConfigured) {
		return scoring.DefaultWeights(), nil
	}
	if err != nil {
		return scoring.WeightVector{}, err
	}
	return cfg.Weights, nil
}

// Replace validates and stores a new weight vector wholesale.
func (s *Service) Replace(ctx context.Context, w scoring.WeightVector, updatedBy string) (Config, error) {
	if err := w.Validate(); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Weights:   w,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Put(ctx, cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
