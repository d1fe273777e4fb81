package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Submit(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	boom := errors.New("boom")
	assert.NoError(t, p.Submit(context.Background(), func(context.Context) error { return nil }))
	assert.ErrorIs(t, p.Submit(context.Background(), func(context.Context) error { return boom }), boom)
}

func TestPool_SubmitAsyncAndShutdownDrains(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 10}, nil)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error {
			time.Sleep(time.Millisecond)
			ran.Add(1)
			return nil
		}))
	}

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(5), ran.Load())
	assert.True(t, p.GetMetrics().IsClosed)
	assert.ErrorIs(t, p.SubmitAsync(context.Background(), func(context.Context) error { return nil }), ErrWorkerPoolClosed)
}

func TestPool_Full(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started
	require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error { return nil }))

	err := p.SubmitAsync(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolFull)
	close(release)
}

func TestPool_CancelledBeforeRun(t *testing.T) {
	p := New(nil, nil)
	defer p.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Submit(ctx, func(context.Context) error { return nil })
	assert.True(t, errors.Is(err, ErrTaskCancelled) || errors.Is(err, context.Canceled))
}
