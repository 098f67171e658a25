package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/scheduler"
)

// schedulerService drives the follow-up sweep and the periodic reply import.
type schedulerService struct {
	sweep     *scheduler.Scheduler
	imports   *scheduler.Scheduler
	followUps FollowUpService
	replies   ReplyService
	logger    *zap.Logger
	now       func() time.Time
}

func NewSchedulerService(
	cfg *config.Config,
	followUps FollowUpService,
	replies ReplyService,
	logger *zap.Logger,
	opts ...Option,
) SchedulerService {
	o := newOptions(opts)
	svc := &schedulerService{
		followUps: followUps,
		replies:   replies,
		logger:    logger,
		now:       o.now,
	}

	sweepEvery := time.Duration(cfg.Scheduler.SweepIntervalSeconds) * time.Second
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	importEvery := time.Duration(cfg.Scheduler.ImportIntervalMinutes) * time.Minute
	if importEvery <= 0 {
		importEvery = 15 * time.Minute
	}

	svc.sweep = scheduler.NewScheduler("follow-up-sweep", logger, sweepEvery, svc.executeSweep)
	svc.imports = scheduler.NewScheduler("reply-import", logger, importEvery, svc.executeImport)
	return svc
}

func (s *schedulerService) Start() error {
	ctx := context.Background()
	if err := s.sweep.Start(ctx); err != nil {
		return err
	}
	if err := s.imports.Start(ctx); err != nil {
		_ = s.sweep.Stop()
		return err
	}
	return nil
}

func (s *schedulerService) Stop() error {
	return errors.Join(s.sweep.Stop(), ignoreNotRunning(s.imports.Stop()))
}

func (s *schedulerService) IsRunning() bool {
	return s.sweep.IsRunning()
}

func (s *schedulerService) executeSweep(ctx context.Context) error {
	_, err := s.followUps.ProcessDue(ctx, s.now())
	return err
}

func (s *schedulerService) executeImport(ctx context.Context) error {
	_, err := s.replies.ImportAll(ctx)
	return err
}

func ignoreNotRunning(err error) error {
	if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
		return nil
	}
	return err
}
