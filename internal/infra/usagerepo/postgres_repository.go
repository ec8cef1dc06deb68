package usagerepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS report_usage (
		mode        TEXT   NOT NULL,
		gender      TEXT   NOT NULL,
		bracket     TEXT   NOT NULL,
		count       BIGINT NOT NULL DEFAULT 0,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (mode, gender, bracket)
	)
`

// PostgresRepository implements fitness.UsageRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the counter table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createTableSQL)
	return err
}

// Increment upserts the counter row for key.
func (r *PostgresRepository) Increment(ctx context.Context, key fitness.UsageKey) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report_usage (mode, gender, bracket, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (mode, gender, bracket)
		DO UPDATE SET count = report_usage.count + 1, updated_at = now()
	`, string(key.Mode), string(key.Gender), string(key.Bracket))
	return err
}

// List returns all counters ordered by count.
func (r *PostgresRepository) List(ctx context.Context) ([]fitness.UsageCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mode, gender, bracket, count
		FROM report_usage
		ORDER BY count DESC, mode, gender, bracket
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fitness.UsageCount
	for rows.Next() {
		var (
			mode, gender, bracket string
			count                 int64
		)
		if err := rows.Scan(&mode, &gender, &bracket, &count); err != nil {
			return nil, err
		}
		out = append(out, fitness.UsageCount{
			UsageKey: fitness.UsageKey{
				Mode:    fitness.Mode(mode),
				Gender:  fitness.Gender(gender),
				Bracket: fitness.AgeBracket(bracket),
			},
			Count: count,
		})
	}
	return out, rows.Err()
}

// Close releases the pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}

var _ fitness.UsageRepository = (*PostgresRepository)(nil)
