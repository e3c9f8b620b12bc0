package worker_test

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/testutil/mocks"
	"github.com/vytor/chessreview/internal/worker"
)

type funcJob struct {
	run func(context.Context) error
}

func (j funcJob) Name() string                  { return "func" }
func (j funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := worker.NewPool(2, 8)
	p.Start(context.Background())
	defer p.Stop()

	var ran atomic.Int32
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Submit(funcJob{run: func(context.Context) error {
			ran.Add(1)
			done <- struct{}{}
			return nil
		}}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	assert.Equal(t, int32(3), ran.Load())
}

func TestPool_SubmitWhenFull(t *testing.T) {
	p := worker.NewPool(1, 1)
	noop := funcJob{run: func(context.Context) error { return nil }}

	require.NoError(t, p.Submit(noop))
	assert.ErrorIs(t, p.Submit(noop), worker.ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_SurvivesPanickingJob(t *testing.T) {
	p := worker.NewPool(1, 2)
	p.Start(context.Background())
	defer p.Stop()

	done := make(chan struct{})
	require.NoError(t, p.Submit(funcJob{run: func(context.Context) error { panic("boom") }}))
	require.NoError(t, p.Submit(funcJob{run: func(context.Context) error { close(done); return nil }}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}
}

func TestSyncJob_Run(t *testing.T) {
	svc := new(mocks.MockSyncService)
	svc.On("Sync", mock.Anything).Return(&models.SyncResult{Synced: 1, Errors: []string{"Failed to import game x: nope"}}, nil).Once()

	job := &worker.SyncJob{Service: svc}
	assert.Equal(t, "sync", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	svc.AssertExpectations(t)
}

func TestSyncJob_InProgressIsNotAFailure(t *testing.T) {
	svc := new(mocks.MockSyncService)
	svc.On("Sync", mock.Anything).Return(nil, errors.NewSyncInProgressError())

	assert.NoError(t, (&worker.SyncJob{Service: svc}).Run(context.Background()))
}

func TestSyncJob_PropagatesFatalError(t *testing.T) {
	svc := new(mocks.MockSyncService)
	svc.On("Sync", mock.Anything).Return(nil, errors.NewSourceUnavailableError("down", stderrors.New("dial")))

	err := (&worker.SyncJob{Service: svc}).Run(context.Background())
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}
