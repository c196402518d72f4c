package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"jollof-hub/logger"
)

// Dispatcher runs best-effort side effects after the primary write has
// committed. Each task gets its own deadline and a failure is only logged.
type Dispatcher struct {
	timeout time.Duration
	log     *logger.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, log *logger.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{timeout: timeout, log: log}
}

// Go detaches task from the caller. The request id of ctx is carried over for
// logging but its cancellation is not.
func (d *Dispatcher) Go(ctx context.Context, action string, task func(ctx context.Context) error) {
	rid := logger.RequestID(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		taskCtx, cancel := context.WithTimeout(logger.WithRequestID(context.Background(), rid), d.timeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				d.log.Error(taskCtx, action, "side effect panicked", fmt.Errorf("%w: %v", ErrNotification, r))
			}
		}()

		start := time.Now()
		if err := task(taskCtx); err != nil {
			d.log.Error(taskCtx, action, "side effect failed", fmt.Errorf("%w: %w", ErrNotification, err),
				slog.Duration("elapsed", time.Since(start)))
			return
		}
		d.log.Debug(taskCtx, action, "side effect delivered", slog.Duration("elapsed", time.Since(start)))
	}()
}

// Wait blocks until every dispatched task has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
