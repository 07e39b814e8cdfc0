package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWeights indicates a weight vector that cannot be used for scoring.
var ErrInvalidWeights = errors.New("invalid weight configuration")

// WeightVector holds the relative importance of the five scoring factors.
// Magnitudes are caller-chosen (1-5 sliders and 0-1 fractions behave the
// same); normalization by the sum happens inside Score on every call.
type WeightVector struct {
	Impact    float64 `json:"impact"`
	Urgency   float64 `json:"urgency"`
	Effort    float64 `json:"effort"`
	Strategic float64 `json:"strategic"`
	Trend     float64 `json:"trend"`
}

// DefaultWeights returns the weight distribution used when no configuration
// has been stored yet.
func DefaultWeights() WeightVector {
	return WeightVector{
		Impact:    5,
		Urgency:   4,
		Effort:    3,
		Strategic: 2,
		Trend:     1,
	}
}

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	return w.Impact + w.Urgency + w.Effort + w.Strategic + w.Trend
}

// Validate checks that every weight is finite and non-negative and that the
// sum is positive. A zero-sum vector is always rejected rather than treated
// as "all factors ignored".
func (w WeightVector) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"impact", w.Impact},
		{"urgency", w.Urgency},
		{"effort", w.Effort},
		{"strategic", w.Strategic},
		{"trend", w.Trend},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: weight %q is not finite", ErrInvalidWeights, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: weight %q is negative (%g)", ErrInvalidWeights, f.name, f.value)
		}
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("%w: weight sum must be positive", ErrInvalidWeights)
	}
	return nil
}
