package weights

import (
	"context"
	"errors"
	"time"

	"feedback-backend/internal/scoring"
)

// ErrNotConfigured indicates that no weight vector has been stored yet.
var ErrNotConfigured = errors.New("weights not configured")

// Config is the stored weight configuration. Replaced wholesale; never
// partially mutated.
type Config struct {
	Weights   scoring.WeightVector `json:"weights"`
	UpdatedBy string               `json:"updatedBy,omitempty"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Repo defines persistence for the weight configuration.
type Repo interface {
	Get(ctx context.Context) (Config, error)
	Put(ctx context.Context, cfg Config) error
}
