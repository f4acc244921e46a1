// Package scheduler manages the scheduled jobs using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/terplist/terplist/internal/shared/biztime"
	"github.com/terplist/terplist/internal/shared/logger"
)

// SnapshotJob is the daily rating snapshot batch. Execute returns the number
// of snapshots written across all categories.
type SnapshotJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager wires the scheduled jobs onto a single gocron scheduler
// running in the business timezone.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.Mutex
}

// NewSchedulerManager creates the scheduler in the business timezone so cron
// expressions line up with the snapshot-hour config.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterRankingJob schedules the daily rating snapshot at the configured
// hour. Singleton mode keeps a long run from overlapping the next trigger on
// this process; the redis run marker covers multi-process deployments.
func (m *SchedulerManager) RegisterRankingJob(job SnapshotJob, snapshotHour int, timeout time.Duration) error {
	if snapshotHour < 0 || snapshotHour > 23 {
		return fmt.Errorf("invalid snapshot hour: %d", snapshotHour)
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(fmt.Sprintf("0 %d * * *", snapshotHour), false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.runSnapshot(ctx, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("ranking", "snapshot"),
		gocron.WithName("ranking-daily-snapshot"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered ranking snapshot job", "hour", snapshotHour)
	return nil
}

func (m *SchedulerManager) runSnapshot(ctx context.Context, job SnapshotJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			m.logger.Warnw("ranking snapshot run cancelled",
				"duration", time.Since(startTime),
			)
			return
		}
		m.logger.Errorw("ranking snapshot run failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("ranking snapshot run completed",
		"snapshots", count,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}
