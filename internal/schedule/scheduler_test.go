package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Name() string {
	return "counting"
}

func (j *countingJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestAddJobValidatesSpec(t *testing.T) {
	s := NewCronScheduler()
	require.Error(t, s.AddJob(&countingJob{}, "not a spec"))
	require.NoError(t, s.AddJob(&countingJob{}, "0 3 * * *"))
	require.Error(t, s.AddJob(&countingJob{}, "@daily"))

	s.Start(context.Background())
	defer s.Stop()
	next, ok := s.Next("counting")
	require.True(t, ok)
	require.Equal(t, 3, next.Hour())
	_, ok = s.Next("missing")
	require.False(t, ok)
}

func TestRunOnce(t *testing.T) {
	job := &countingJob{}
	require.NoError(t, RunOnce(context.Background(), job))
	require.Equal(t, 1, job.runs)

	job.err = errors.New("boom")
	require.ErrorIs(t, RunOnce(context.Background(), job), job.err)
}

func TestGuardSkipsOverlappingRun(t *testing.T) {
	s := NewCronScheduler()
	block := make(chan struct{})
	started := make(chan struct{})
	job := &blockingJob{block: block, started: started}
	run := s.guard(job)

	go run()
	<-started
	run()
	close(block)
	require.Equal(t, int32(1), job.calls.Load())
}

type blockingJob struct {
	block   chan struct{}
	started chan struct{}
	calls   atomic.Int32
}

func (j *blockingJob) Name() string {
	return "blocking"
}

func (j *blockingJob) Run(ctx context.Context) error {
	j.calls.Add(1)
	close(j.started)
	<-j.block
	return nil
}
