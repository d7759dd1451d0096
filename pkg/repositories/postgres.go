package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the migrations
// found in the migrations directory, if one is given.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string, migrations string) (Repository, error) {
	pool, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if migrations != "" {
		files, err := readMigrations(migrations)
		if err != nil {
			pool.Close()
			return nil, err
		}
		for _, m := range files {
			if _, err := pool.Exec(ctx, m.sql); err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to execute migration %s: %v", m.name, err)
			}
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return pool, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveResult(ctx context.Context, result *types.Result) (*models.Result, error) {
	m, err := newResultModel(result)
	if err != nil {
		return nil, err
	}

	q := `
	INSERT INTO results (id, session_id, player, outcome, round, rounds_completed, sequence_length, skill_level, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.pool.Exec(ctx, q, m.ID, m.SessionID, m.Player, m.Outcome, m.Round, m.RoundsCompleted, m.SequenceLength, m.SkillLevel, m.FinishedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert result: %v", err)
	}

	return m, nil
}

func (r *PostgresRepository) GetResult(ctx context.Context, id string) (*models.Result, error) {
	q := `
	SELECT id, session_id, player, outcome, round, rounds_completed, sequence_length, skill_level, finished_at
	FROM results WHERE id = $1;
	`
	m, err := scanPostgresResult(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to scan result: %v", err)
	}

	return m, nil
}

func (r *PostgresRepository) ListResults(ctx context.Context, limit int) ([]*models.Result, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := `
	SELECT id, session_id, player, outcome, round, rounds_completed, sequence_length, skill_level, finished_at
	FROM results ORDER BY finished_at DESC, id LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %v", err)
	}
	defer rows.Close()

	results := make([]*models.Result, 0)
	for rows.Next() {
		m, err := scanPostgresResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %v", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %v", err)
	}

	return results, nil
}

func (r *PostgresRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	q := `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE outcome = 'victory'),
		COUNT(*) FILTER (WHERE outcome = 'mismatch'),
		COALESCE(MAX(rounds_completed), 0),
		COALESCE(AVG(rounds_completed), 0)::float8
	FROM results;
	`
	stats := &models.Stats{}
	err := r.pool.QueryRow(ctx, q).Scan(&stats.Games, &stats.Victories, &stats.Mismatches, &stats.BestRoundsCompleted, &stats.AverageRoundsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %v", err)
	}

	return stats, nil
}

func scanPostgresResult(row pgx.Row) (*models.Result, error) {
	m := &models.Result{}
	if err := row.Scan(&m.ID, &m.SessionID, &m.Player, &m.Outcome, &m.Round, &m.RoundsCompleted, &m.SequenceLength, &m.SkillLevel, &m.FinishedAt); err != nil {
		return nil, err
	}
	m.FinishedAt = m.FinishedAt.UTC()
	return m, nil
}
