package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/linskybing/robolab-go/internal/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDrainer struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (d *countingDrainer) DrainOnce(ctx context.Context) (application.DrainResult, error) {
	d.calls.Add(1)
	if d.release != nil {
		<-d.release
	}
	return application.DrainResult{Sent: 1}, d.err
}

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) CleanupExpiredSessions(context.Context) (int64, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestNewWorker(t *testing.T) {
	w := NewWorker(&countingDrainer{}, nil, "")
	if w == nil {
		t.Fatal("expected non-nil worker")
	}
	assert.Equal(t, "@every 30s", w.mailSpec)
	assert.False(t, w.IsRunning())
}

func TestRunOnce(t *testing.T) {
	d := &countingDrainer{}
	w := NewWorker(d, nil, "@every 1s")

	res, ran := w.RunOnce(context.Background())
	assert.True(t, ran)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, int32(1), d.calls.Load())
}

func TestRunOnce_LogsDrainError(t *testing.T) {
	d := &countingDrainer{err: errors.New("store down")}
	w := NewWorker(d, nil, "@every 1s")

	_, ran := w.RunOnce(context.Background())
	assert.True(t, ran)
}

func TestRunOnce_SkipsOverlap(t *testing.T) {
	d := &countingDrainer{release: make(chan struct{})}
	w := NewWorker(d, nil, "@every 1s")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.RunOnce(context.Background())
	}()

	require.Eventually(t, func() bool { return d.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	_, ran := w.RunOnce(context.Background())
	assert.False(t, ran)

	close(d.release)
	wg.Wait()
	assert.Equal(t, int32(1), d.calls.Load())
}

func TestStart_RunsOnScheduleAndStops(t *testing.T) {
	d := &countingDrainer{}
	w := NewWorker(d, &countingSweeper{}, "@every 1s")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return d.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	assert.True(t, w.IsRunning())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.False(t, w.IsRunning())
}

func TestStart_InvalidSpec(t *testing.T) {
	w := NewWorker(&countingDrainer{}, nil, "every now and then")
	assert.Error(t, w.Start(context.Background()))
}
