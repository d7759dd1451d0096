package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	files, err := readMigrations(migrations)
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, m := range files {
		if _, err := db.ExecContext(ctx, m.sql); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %s: %v", m.name, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveResult(ctx context.Context, result *types.Result) (*models.Result, error) {
	m, err := newResultModel(result)
	if err != nil {
		return nil, err
	}

	q := `
	INSERT INTO results (id, session_id, player, outcome, round, rounds_completed, sequence_length, skill_level, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = r.db.ExecContext(ctx, q, m.ID, m.SessionID, m.Player, m.Outcome, m.Round, m.RoundsCompleted, m.SequenceLength, m.SkillLevel, m.FinishedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to insert result: %v", err)
	}

	return m, nil
}

func (r *SQLiteRepository) GetResult(ctx context.Context, id string) (*models.Result, error) {
	q := `
	SELECT id, session_id, player, outcome, round, rounds_completed, sequence_length, skill_level, finished_at
	FROM results WHERE id = ?;
	`
	m, err := scanSQLiteResult(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to scan result: %v", err)
	}

	return m, nil
}

func (r *SQLiteRepository) ListResults(ctx context.Context, limit int) ([]*models.Result, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := `
	SELECT id, session_id, player, outcome, round, rounds_completed, sequence_length, skill_level, finished_at
	FROM results ORDER BY finished_at DESC, id LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %v", err)
	}
	defer rows.Close()

	results := make([]*models.Result, 0)
	for rows.Next() {
		m, err := scanSQLiteResult(rows)
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

func (r *SQLiteRepository) GetStats(ctx context.Context) (*models.Stats, error) {
	q := `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN outcome = 'mismatch' THEN 1 ELSE 0 END), 0),
		COALESCE(MAX(rounds_completed), 0),
		COALESCE(AVG(rounds_completed), 0)
	FROM results;
	`
	stats := &models.Stats{}
	err := r.db.QueryRowContext(ctx, q).Scan(&stats.Games, &stats.Victories, &stats.Mismatches, &stats.BestRoundsCompleted, &stats.AverageRoundsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %v", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteResult(row rowScanner) (*models.Result, error) {
	m := &models.Result{}
	var finishedAt int64
	if err := row.Scan(&m.ID, &m.SessionID, &m.Player, &m.Outcome, &m.Round, &m.RoundsCompleted, &m.SequenceLength, &m.SkillLevel, &finishedAt); err != nil {
		return nil, err
	}
	m.FinishedAt = time.UnixMilli(finishedAt).UTC()
	return m, nil
}
