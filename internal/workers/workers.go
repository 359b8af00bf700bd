package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers builds the enabled background workers. A zero sweep interval
// leaves the expired-code sweeper out.
func NewWorkers(cleaner ExpiredOTPCleaner, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.OTPSweepInterval > 0 {
		w.workers = append(w.workers, NewOTPSweeper(cleaner, cfg.OTPSweepInterval, logger))
	}
	return w
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
