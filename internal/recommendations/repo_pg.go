package recommendations

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new recommendation.
func (r *PGRepo) Create(ctx context.Context, rec Recommendation) error {
	const query = `
INSERT INTO recommendations (
	id, course_id, title, description, category,
	impact, urgency, effort, strategic, trend,
	priority_score, is_show_stopper, status, validator, validation_notes,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.CourseID,
		rec.Title,
		rec.Description,
		rec.Category,
		rec.Factors.Impact,
		rec.Factors.Urgency,
		rec.Factors.Effort,
		rec.Factors.Strategic,
		rec.Factors.Trend,
		rec.PriorityScore,
		rec.IsShowStopper,
		rec.Status,
		rec.Validator,
		rec.ValidationNotes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

const selectColumns = `
SELECT id, course_id, title, description, category,
       impact, urgency, effort, strategic, trend,
       priority_score, is_show_stopper, status, validator, validation_notes,
       created_at, updated_at
FROM recommendations`

// GetByID returns a recommendation by ID.
func (r *PGRepo) GetByID(ctx context.Context, recID string) (Recommendation, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, recID)
	rec, err := scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recommendation{}, ErrNotFound
	}
	return rec, err
}

// ListByCourse returns the course's recommendations in insertion order.
func (r *PGRepo) ListByCourse(ctx context.Context, courseID string) ([]Recommendation, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+` WHERE course_id = $1 ORDER BY created_at, id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Recommendation, 0, 16)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListCourseIDs returns every course that has recommendations.
func (r *PGRepo) ListCourseIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT DISTINCT course_id FROM recommendations ORDER BY course_id`)
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

// Update replaces the mutable fields of an existing recommendation.
func (r *PGRepo) Update(ctx context.Context, rec Recommendation) error {
	const query = `
UPDATE recommendations
SET title = $2, description = $3, category = $4,
    impact = $5, urgency = $6, effort = $7, strategic = $8, trend = $9,
    priority_score = $10, is_show_stopper = $11, status = $12,
    validator = $13, validation_notes = $14, updated_at = $15
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Title,
		rec.Description,
		rec.Category,
		rec.Factors.Impact,
		rec.Factors.Urgency,
		rec.Factors.Effort,
		rec.Factors.Strategic,
		rec.Factors.Trend,
		rec.PriorityScore,
		rec.IsShowStopper,
		rec.Status,
		rec.Validator,
		rec.ValidationNotes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceScores updates a batch of priority scores in one transaction.
func (r *PGRepo) ReplaceScores(ctx context.Context, scores map[string]float64, updatedAt time.Time) error {
	if len(scores) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `UPDATE recommendations SET priority_score = $2, updated_at = $3 WHERE id = $1`
	for id, score := range scores {
		res, err := tx.ExecContext(ctx, query, id, score, updatedAt)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (Recommendation, error) {
	var rec Recommendation
	var validator, notes sql.NullString
	err := row.Scan(
		&rec.ID,
		&rec.CourseID,
		&rec.Title,
		&rec.Description,
		&rec.Category,
		&rec.Factors.Impact,
		&rec.Factors.Urgency,
		&rec.Factors.Effort,
		&rec.Factors.Strategic,
		&rec.Factors.Trend,
		&rec.PriorityScore,
		&rec.IsShowStopper,
		&rec.Status,
		&validator,
		&notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return Recommendation{}, err
	}
	rec.Validator = validator.String
	rec.ValidationNotes = notes.String
	return rec, nil
}
