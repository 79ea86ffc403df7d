package services

import (
	"context"
	"sync"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

// Dispatcher runs best-effort tasks on their own goroutines with a detached,
// time-bounded context. Failures are logged and never reach the caller.
type Dispatcher struct {
	base    context.Context
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(base context.Context, timeout time.Duration) *Dispatcher {
	if base == nil {
		base = context.Background()
	}
	return &Dispatcher{base: context.WithoutCancel(base), timeout: timeout}
}

func (d *Dispatcher) Go(name string, fields map[string]any, task func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		logFields := logger.Fields{"task": name}
		for k, v := range fields {
			logFields[k] = v
		}

		defer func() {
			if r := recover(); r != nil {
				logFields["panic"] = r
				logger.Error("background task panicked", nil, logFields)
			}
		}()

		ctx, cancel := context.WithTimeout(d.base, d.timeout)
		defer cancel()

		start := time.Now()
		err := task(ctx)
		logFields["durationMs"] = time.Since(start).Milliseconds()
		if err != nil {
			logger.Error("background task failed", err, logFields)
			return
		}
		logger.Info("background task completed", logFields)
	}()
}

// Wait blocks until every dispatched task has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
