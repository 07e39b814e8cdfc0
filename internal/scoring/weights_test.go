package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestWeightVectorValidate(t *testing.T) {
	cases := []struct {
		name    string
		weights WeightVector
		wantErr bool
	}{
		{"default", DefaultWeights(), false},
		{"fractions", WeightVector{Impact: 0.3, Urgency: 0.3, Effort: 0.2, Strategic: 0.1, Trend: 0.1}, false},
		{"single_factor", WeightVector{Urgency: 1}, false},
		{"zero_sum", WeightVector{}, true},
		{"negative_field", WeightVector{Impact: 2, Urgency: 1, Effort: -1, Strategic: 1, Trend: 1}, true},
		{"nan_field", WeightVector{Impact: 1, Trend: math.NaN()}, true},
		{"inf_field", WeightVector{Impact: 1, Strategic: math.Inf(-1)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.weights.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidWeights) {
					t.Fatalf("expected ErrInvalidWeights, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestWeightVectorSum(t *testing.T) {
	w := WeightVector{Impact: 5, Urgency: 4, Effort: 3, Strategic: 2, Trend: 1}
	if got := w.Sum(); got != 15 {
		t.Fatalf("expected sum 15, got %g", got)
	}
}
