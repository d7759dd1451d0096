package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/repositories"
)

const (
	// DefaultSaveTimeout bounds a single save
	DefaultSaveTimeout = 5 * time.Second
)

type SaveResultWorker struct {
	repository  repositories.Repository
	resultChan  <-chan *types.Result
	saveTimeout time.Duration
	logger      *log.Logger
}

type NewSaveResultWorkerOptions struct {
	Repository  repositories.Repository
	ResultChan  <-chan *types.Result
	SaveTimeout time.Duration
}

// NewSaveResultWorker creates a new SaveResultWorker.
// The worker persists the results of finished games sent by the sessions.
func NewSaveResultWorker(opts NewSaveResultWorkerOptions) *SaveResultWorker {
	saveTimeout := opts.SaveTimeout
	if saveTimeout <= 0 {
		saveTimeout = DefaultSaveTimeout
	}
	return &SaveResultWorker{
		repository:  opts.Repository,
		resultChan:  opts.ResultChan,
		saveTimeout: saveTimeout,
		logger:      log.WithComponent("workers"),
	}
}

// Start saves results until ctx is done or the result channel is closed.
// Results still buffered when ctx is done are saved before returning.
func (w *SaveResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case result, ok := <-w.resultChan:
			if !ok {
				return
			}
			w.saveResult(ctx, result)
		}
	}
}

func (w *SaveResultWorker) drain() {
	for {
		select {
		case result, ok := <-w.resultChan:
			if !ok {
				return
			}
			w.saveResult(context.Background(), result)
		default:
			return
		}
	}
}

func (w *SaveResultWorker) saveResult(ctx context.Context, result *types.Result) {
	ctx, cancel := context.WithTimeout(ctx, w.saveTimeout)
	defer cancel()

	saved, err := w.repository.SaveResult(ctx, result)
	if err != nil {
		w.logger.Error("Failed to save result of session %s: %v", result.SessionID, err)
		return
	}
	w.logger.Debug("Saved result %s of session %s", saved.ID, saved.SessionID)
}
