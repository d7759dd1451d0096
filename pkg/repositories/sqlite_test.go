package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqliteMigrations = "../../migrations/sqlite"

func newTestSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()
	repository, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "simon.db"), sqliteMigrations)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(ctx) })
	return repository
}

func testResult(outcome types.Outcome, completed int, finishedAt time.Time) *types.Result {
	round := completed + 1
	if outcome == types.OutcomeVictory {
		round = completed
	}
	return &types.Result{
		SessionID:       "session-1",
		Player:          "ada",
		Outcome:         outcome,
		Round:           round,
		RoundsCompleted: completed,
		SequenceLength:  round,
		SkillLevel:      2,
		FinishedAt:      finishedAt,
	}
}

func TestSQLiteRepository_SaveAndGetResult(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)
	finishedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	saved, err := repository.SaveResult(ctx, testResult(types.OutcomeMismatch, 3, finishedAt))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := repository.GetResult(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
	assert.Equal(t, "mismatch", got.Outcome)
	assert.Equal(t, 4, got.Round)
	assert.True(t, finishedAt.Equal(got.FinishedAt))

	_, err = repository.GetResult(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

func TestSQLiteRepository_SaveResult_invalid(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	_, err := repository.SaveResult(ctx, nil)
	assert.Error(t, err)

	_, err = repository.SaveResult(ctx, &types.Result{Outcome: "abandoned"})
	assert.Error(t, err)
}

func TestSQLiteRepository_ListResults(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := repository.SaveResult(ctx, testResult(types.OutcomeMismatch, i, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	results, err := repository.ListResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].RoundsCompleted)
	assert.Equal(t, 1, results[1].RoundsCompleted)

	results, err = repository.ListResults(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSQLiteRepository_GetStats(t *testing.T) {
	ctx := context.Background()
	repository := newTestSQLiteRepository(t)

	stats, err := repository.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Games)

	now := time.Now()
	for _, r := range []*types.Result{
		testResult(types.OutcomeVictory, 8, now),
		testResult(types.OutcomeMismatch, 2, now),
		testResult(types.OutcomeMismatch, 0, now),
	} {
		_, err := repository.SaveResult(ctx, r)
		require.NoError(t, err)
	}

	stats, err = repository.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Games)
	assert.Equal(t, 1, stats.Victories)
	assert.Equal(t, 2, stats.Mismatches)
	assert.Equal(t, 8, stats.BestRoundsCompleted)
	assert.InDelta(t, 10.0/3.0, stats.AverageRoundsCompleted, 1e-9)
}

func TestNewSQLiteRepository_missingMigrations(t *testing.T) {
	_, err := NewSQLiteRepository(context.Background(), filepath.Join(t.TempDir(), "simon.db"), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
