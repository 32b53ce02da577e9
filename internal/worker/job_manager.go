package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// JobManager owns the lifecycle of one named polling loop, independent
// of any presentation concern: explicit Start/Stop, at most one active
// job at a time.
type JobManager struct {
	name     string
	interval time.Duration
	tick     TickFunc

	currentJob *Job
	mu         sync.Mutex
	wg         *sync.WaitGroup
	log        *zap.Logger
}

func NewJobManager(name string, interval time.Duration, tick TickFunc, wg *sync.WaitGroup, log *zap.Logger) *JobManager {
	return &JobManager{
		name:     name,
		interval: interval,
		tick:     tick,
		wg:       wg,
		log:      log,
	}
}

func (m *JobManager) Name() string {
	return m.name
}

// Start launches the loop.
func (m *JobManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentJob != nil {
		return errors.New("job is already running")
	}
	m.wg.Add(1)

	m.currentJob = NewJob(m.name, m.interval, m.tick, m.log)
	m.currentJob.Start(ctx, m.wg)
	return nil
}

// Stop halts the active loop. In-flight gateway calls finish on their
// own; they write through conditional updates, so a late completion
// cannot corrupt state.
func (m *JobManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentJob == nil {
		return errors.New("actively running job not found")
	}

	m.currentJob.Stop()
	m.currentJob = nil
	return nil
}

// IsRunning checks if the loop is currently active.
func (m *JobManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentJob != nil
}
