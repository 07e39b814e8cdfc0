package scoring

import "math"

// FactorScores holds the five per-recommendation sub-scores, each in [0,100].
// Effort is a cost signal: higher means more work, so it is inverted before
// weighting. Produced upstream; treated as immutable here.
type FactorScores struct {
	Impact    float64 `json:"impact"`
	Urgency   float64 `json:"urgency"`
	Effort    float64 `json:"effort"`
	Strategic float64 `json:"strategic"`
	Trend     float64 `json:"trend"`
}

// Score computes the weighted priority score in [0,100] for the given factor
// scores. The weighted sum is divided by the weight sum, so proportionally
// equal weight vectors on any positive scale produce identical scores.
func Score(f FactorScores, w WeightVector) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	effectiveEffort := clamp(100-f.Effort, 0, 100)

	weightedSum := f.Impact*w.Impact +
		f.Urgency*w.Urgency +
		effectiveEffort*w.Effort +
		f.Strategic*w.Strategic +
		f.Trend*w.Trend

	raw := weightedSum / w.Sum()
	return clamp(math.Round(raw), 0, 100), nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
