package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJobManagerLifecycle(t *testing.T) {
	var wg sync.WaitGroup
	manager := NewJobManager("test", time.Hour, func(context.Context) {}, &wg, zap.NewNop())

	assert.False(t, manager.IsRunning())
	assert.Error(t, manager.Stop())

	require.NoError(t, manager.Start(context.Background()))
	assert.True(t, manager.IsRunning())
	assert.Error(t, manager.Start(context.Background()))

	require.NoError(t, manager.Stop())
	assert.False(t, manager.IsRunning())
	assert.Error(t, manager.Stop())

	wg.Wait()
}

func TestJobManagerRestart(t *testing.T) {
	var wg sync.WaitGroup
	manager := NewJobManager("test", time.Hour, func(context.Context) {}, &wg, zap.NewNop())

	require.NoError(t, manager.Start(context.Background()))
	require.NoError(t, manager.Stop())
	require.NoError(t, manager.Start(context.Background()))
	assert.True(t, manager.IsRunning())
	require.NoError(t, manager.Stop())

	wg.Wait()
}

func TestJobTicks(t *testing.T) {
	var wg sync.WaitGroup
	var ticks atomic.Int32
	manager := NewJobManager("test", 5*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	}, &wg, zap.NewNop())

	require.NoError(t, manager.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return ticks.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, manager.Stop())
	wg.Wait()
}

func TestJobStopsOnContextCancel(t *testing.T) {
	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())
	manager := NewJobManager("test", time.Hour, func(context.Context) {}, &wg, zap.NewNop())

	require.NoError(t, manager.Start(ctx))
	cancel()

	// The goroutine exits via ctx.Done and releases the wait group.
	wg.Wait()
}
