package workers

import (
	"context"
	"fmt"
	"testing"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/repositories/mocks"
	"github.com/cbodonnell/simon/pkg/repositories/models"
	"github.com/stretchr/testify/mock"
)

func TestSaveResultWorker_Start(t *testing.T) {
	repository := &mocks.Repository{}
	ok := &types.Result{SessionID: "a", Outcome: types.OutcomeVictory}
	failing := &types.Result{SessionID: "b", Outcome: types.OutcomeMismatch}
	repository.On("SaveResult", mock.Anything, ok).Return(&models.Result{ID: "1", SessionID: "a"}, nil).Once()
	repository.On("SaveResult", mock.Anything, failing).Return(nil, fmt.Errorf("disk full")).Once()

	resultChan := make(chan *types.Result, 2)
	resultChan <- ok
	resultChan <- failing
	close(resultChan)

	worker := NewSaveResultWorker(NewSaveResultWorkerOptions{
		Repository: repository,
		ResultChan: resultChan,
	})
	worker.Start(context.Background())

	repository.AssertExpectations(t)
}

func TestSaveResultWorker_drainsOnCancel(t *testing.T) {
	repository := &mocks.Repository{}
	result := &types.Result{SessionID: "a", Outcome: types.OutcomeMismatch}
	repository.On("SaveResult", mock.Anything, result).Return(&models.Result{ID: "1", SessionID: "a"}, nil).Once()

	resultChan := make(chan *types.Result, 1)
	resultChan <- result

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker := NewSaveResultWorker(NewSaveResultWorkerOptions{
		Repository: repository,
		ResultChan: resultChan,
	})
	worker.Start(ctx)

	repository.AssertExpectations(t)
}
