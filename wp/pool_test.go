package wp

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsEveryTaskBeforeStopReturns(t *testing.T) {
	p := NewPool(3, 2)

	var counter atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, p.Submit(context.Background(), "/api/users", func() {
			counter.Add(1)
		}))
	}

	p.Stop()

	assert.Equal(t, int32(20), counter.Load())
}

func TestPool_SameKeyKeepsOrder(t *testing.T) {
	p := NewPool(4, 10)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(context.Background(), "/api/users/2", func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}))
	}
	p.Stop()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestPool_NilTask(t *testing.T) {
	p := NewPool(2, 2)
	defer p.Stop()

	assert.NoError(t, p.Submit(context.Background(), "nil-task", nil))
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(2, 2)
	p.Stop()
	p.Stop()

	err := p.Submit(context.Background(), "stopped-task", func() {})

	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_SubmitHonorsContext(t *testing.T) {
	p := NewPool(1, 1)
	release := make(chan struct{})
	defer func() {
		close(release)
		p.Stop()
	}()

	started := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), "k", func() {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, p.Submit(context.Background(), "k", func() {}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Submit(ctx, "k", func() {})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewPool_ClampsSizes(t *testing.T) {
	p := NewPool(0, 0)
	defer p.Stop()

	assert.Equal(t, 1, p.Workers())
}

func TestPool_StopReleasesTaskSubmittingToItsOwnWorker(t *testing.T) {
	p := NewPool(1, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	resubmitted := make(chan error, 1)
	require.NoError(t, p.Submit(context.Background(), "k", func() {
		close(started)
		<-release
		resubmitted <- p.Submit(context.Background(), "k", func() {})
	}))
	<-started
	require.NoError(t, p.Submit(context.Background(), "k", func() {}))

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	close(release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.ErrorIs(t, <-resubmitted, ErrPoolStopped)
}
