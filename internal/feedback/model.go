package feedback

import (
	"time"

	"feedback-backend/internal/classify"
)

// Feedback is one stored course review.
type Feedback struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"courseId"`
	PositiveText    string    `json:"positiveText,omitempty"`
	ImprovementText string    `json:"improvementText,omitempty"`
	ShowStopperText string    `json:"showStopperText,omitempty"`
	IsShowStopper   bool      `json:"isShowStopper"`
	Rating          int       `json:"rating"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Record converts the stored row into the classifier's input shape.
func (f Feedback) Record() classify.FeedbackRecord {
	return classify.FeedbackRecord{
		PositiveText:    f.PositiveText,
		ImprovementText: f.ImprovementText,
		ShowStopperText: f.ShowStopperText,
		IsShowStopper:   f.IsShowStopper,
		Rating:          f.Rating,
	}
}
