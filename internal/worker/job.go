package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TickFunc is one evaluation pass of a polling loop.
type TickFunc func(ctx context.Context)

// Job runs a tick function on a fixed cadence until stopped. A tick that
// outlives the interval is not run concurrently with itself; the next
// firing is simply skipped, which is safe because every tick
// re-evaluates from scratch.
type Job struct {
	name      string
	ticker    *time.Ticker
	quit      chan struct{}
	tick      TickFunc
	isRunning bool
	mu        sync.Mutex
	log       *zap.Logger
}

func NewJob(name string, interval time.Duration, tick TickFunc, log *zap.Logger) *Job {
	return &Job{
		name:   name,
		ticker: time.NewTicker(interval),
		quit:   make(chan struct{}),
		tick:   tick,
		log:    log,
	}
}

func (j *Job) Start(ctx context.Context, wg *sync.WaitGroup) {
	j.log.Info("job started", zap.String("job", j.name))
	go func() {
		for {
			select {
			case <-j.ticker.C:
				j.run(ctx)
			case <-j.quit:
				j.ticker.Stop()
				j.log.Info("job stopped by toggle", zap.String("job", j.name))
				wg.Done()
				return
			case <-ctx.Done():
				j.ticker.Stop()
				j.log.Info("job stopped by shutdown", zap.String("job", j.name))
				wg.Done()
				return
			}
		}
	}()
}

func (j *Job) Stop() {
	close(j.quit)
}

func (j *Job) run(ctx context.Context) {
	j.mu.Lock()
	if j.isRunning {
		j.log.Debug("previous tick still running, skipping", zap.String("job", j.name))
		j.mu.Unlock()
		return
	}
	j.isRunning = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.isRunning = false
		j.mu.Unlock()
	}()

	j.tick(ctx)
}
