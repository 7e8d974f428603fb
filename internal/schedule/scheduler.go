package schedule

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// CronScheduler runs jobs on five-field cron specs. A job still running
// when its next tick fires is skipped for that tick.
type CronScheduler struct {
	cron *cron.Cron
	ctx  context.Context
	jobs map[string]cron.EntryID
}

func NewCronScheduler() *CronScheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &CronScheduler{
		cron: cron.New(cron.WithParser(parser)),
		ctx:  context.Background(),
		jobs: make(map[string]cron.EntryID),
	}
}

func (c *CronScheduler) AddJob(job Job, spec string) error {
	name := job.Name()
	if _, ok := c.jobs[name]; ok {
		return fmt.Errorf("job %s already scheduled", name)
	}
	id, err := c.cron.AddFunc(spec, c.guard(job))
	if err != nil {
		return fmt.Errorf("schedule %s with %q: %w", name, spec, err)
	}
	c.jobs[name] = id
	logutil.GetLogger(context.Background()).Info("job scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

// Next reports when the named job fires next.
func (c *CronScheduler) Next(name string) (time.Time, bool) {
	id, ok := c.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	return c.cron.Entry(id).Next, true
}

func (c *CronScheduler) Start(ctx context.Context) {
	if ctx != nil {
		c.ctx = ctx
	}
	c.cron.Start()
}

// Stop waits for running jobs to return.
func (c *CronScheduler) Stop() {
	<-c.cron.Stop().Done()
}

func (c *CronScheduler) guard(job Job) func() {
	var running atomic.Bool
	return func() {
		if !running.CompareAndSwap(false, true) {
			logutil.GetLogger(c.ctx).Info("job skipped, previous run still active", zap.String("job", job.Name()))
			return
		}
		defer running.Store(false)
		_ = RunOnce(c.ctx, job)
	}
}

// RunOnce runs job immediately with start/finish logging.
func RunOnce(ctx context.Context, job Job) error {
	logger := logutil.GetLogger(ctx).With(zap.String("job", job.Name()))
	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("job failed", zap.Error(err), zap.Duration("duration", elapsed))
		return err
	}
	logger.Info("job finished", zap.Duration("duration", elapsed))
	return nil
}
