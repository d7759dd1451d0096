package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/repositories/models"
	"github.com/google/uuid"
)

const (
	// DefaultListLimit is used when ListResults is called without a positive limit
	DefaultListLimit = 20
)

type Repository interface {
	Close(ctx context.Context) error
	SaveResult(ctx context.Context, result *types.Result) (*models.Result, error)
	GetResult(ctx context.Context, id string) (*models.Result, error)
	ListResults(ctx context.Context, limit int) ([]*models.Result, error)
	GetStats(ctx context.Context) (*models.Stats, error)
}

func newResultModel(result *types.Result) (*models.Result, error) {
	if result == nil {
		return nil, fmt.Errorf("result is nil")
	}
	if !result.Outcome.Valid() {
		return nil, fmt.Errorf("invalid outcome %q", result.Outcome)
	}
	return &models.Result{
		ID:              uuid.NewString(),
		SessionID:       result.SessionID,
		Player:          result.Player,
		Outcome:         string(result.Outcome),
		Round:           result.Round,
		RoundsCompleted: result.RoundsCompleted,
		SequenceLength:  result.SequenceLength,
		SkillLevel:      result.SkillLevel,
		FinishedAt:      result.FinishedAt.UTC(),
	}, nil
}

type migration struct {
	name string
	sql  string
}

// readMigrations returns the SQL files of dir ordered by file name.
func readMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	var migrations []migration
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}

		migrationPath := filepath.Join(dir, entry.Name())
		b, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		migrations = append(migrations, migration{name: migrationPath, sql: string(b)})
	}

	return migrations, nil
}
