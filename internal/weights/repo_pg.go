package weights

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres. The configuration is a single row.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the stored configuration.
func (r *PGRepo) Get(ctx context.Context) (Config, error) {
	const query = `
SELECT impact, urgency, effort, strategic, trend, updated_by, updated_at
FROM weight_config WHERE id = 1`
	var cfg Config
	var updatedBy sql.NullString
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&cfg.Weights.Impact,
		&cfg.Weights.Urgency,
		&cfg.Weights.Effort,
		&cfg.Weights.Strategic,
		&cfg.Weights.Trend,
		&updatedBy,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Config{}, ErrNotConfigured
	}
	if err != nil {
		return Config{}, err
	}
	cfg.UpdatedBy = updatedBy.String
	return cfg, nil
}

// Put replaces the stored configuration.
func (r *PGRepo) Put(ctx context.Context, cfg Config) error {
	const query = `
INSERT INTO weight_config (id, impact, urgency, effort, strategic, trend, updated_by, updated_at)
VALUES (1, $1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	impact = EXCLUDED.impact,
	urgency = EXCLUDED.urgency,
	effort = EXCLUDED.effort,
	strategic = EXCLUDED.strategic,
	trend = EXCLUDED.trend,
	updated_by = EXCLUDED.updated_by,
	updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(ctx, query,
		cfg.Weights.Impact,
		cfg.Weights.Urgency,
		cfg.Weights.Effort,
		cfg.Weights.Strategic,
		cfg.Weights.Trend,
		cfg.UpdatedBy,
		cfg.UpdatedAt,
	)
	return err
}
