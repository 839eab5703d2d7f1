package jobs

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (j *countingJob) Name() string            { return "counting" }
func (j *countingJob) Interval() time.Duration { return time.Hour }
func (j *countingJob) Run(ctx context.Context) error {
	if j.runs.Add(1) == 1 {
		close(j.done)
	}
	return nil
}

func TestSchedulerRunsJobImmediately(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := NewScheduler(logger)

	job := &countingJob{done: make(chan struct{})}
	scheduler.Register(job)
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}

	assert.GreaterOrEqual(t, job.runs.Load(), int32(1))
}

type panickingJob struct {
	done chan struct{}
}

func (j *panickingJob) Name() string            { return "panicking" }
func (j *panickingJob) Interval() time.Duration { return time.Hour }
func (j *panickingJob) Run(ctx context.Context) error {
	defer close(j.done)
	panic("boom")
}

func TestSchedulerRecoversFromPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduler := NewScheduler(logger)

	job := &panickingJob{done: make(chan struct{})}
	scheduler.Register(job)
	scheduler.Start(context.Background())

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}

	// Stop must return despite the panic inside Run.
	scheduler.Stop()
}
