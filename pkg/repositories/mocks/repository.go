// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/repositories/models"
	"github.com/stretchr/testify/mock"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Repository) SaveResult(ctx context.Context, result *types.Result) (*models.Result, error) {
	args := m.Called(ctx, result)
	saved, _ := args.Get(0).(*models.Result)
	return saved, args.Error(1)
}

func (m *Repository) GetResult(ctx context.Context, id string) (*models.Result, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*models.Result)
	return result, args.Error(1)
}

func (m *Repository) ListResults(ctx context.Context, limit int) ([]*models.Result, error) {
	args := m.Called(ctx, limit)
	results, _ := args.Get(0).([]*models.Result)
	return results, args.Error(1)
}

func (m *Repository) GetStats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.Stats)
	return stats, args.Error(1)
}
