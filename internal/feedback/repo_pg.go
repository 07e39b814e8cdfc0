package feedback

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new feedback record.
func (r *PGRepo) Create(ctx context.Context, fb Feedback) error {
	const query = `
INSERT INTO feedback (
	id, course_id, positive_text, improvement_text, show_stopper_text,
	is_show_stopper, rating, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		fb.ID,
		fb.CourseID,
		fb.PositiveText,
		fb.ImprovementText,
		fb.ShowStopperText,
		fb.IsShowStopper,
		fb.Rating,
		fb.CreatedAt,
	)
	return err
}

// ListByCourse returns the course's feedback in insertion order.
func (r *PGRepo) ListByCourse(ctx context.Context, courseID string) ([]Feedback, error) {
	const query = `
SELECT id, course_id, positive_text, improvement_text, show_stopper_text,
       is_show_stopper, rating, created_at
FROM feedback WHERE course_id = $1 ORDER BY created_at, id`
	rows, err := r.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Feedback, 0, 32)
	for rows.Next() {
		var fb Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.CourseID,
			&fb.PositiveText,
			&fb.ImprovementText,
			&fb.ShowStopperText,
			&fb.IsShowStopper,
			&fb.Rating,
			&fb.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

// ListCourseIDs returns every course with stored feedback.
func (r *PGRepo) ListCourseIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT course_id FROM feedback ORDER BY course_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
