package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs a job on a fixed interval until stopped.
type Scheduler struct {
	name      string
	logger    *zap.Logger
	interval  time.Duration
	taskFunc  func(context.Context) error
	stopCh    chan struct{}
	doneCh    chan struct{}
	isRunning bool
	stopping  bool
	mu        sync.RWMutex
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(name string, logger *zap.Logger, interval time.Duration, taskFunc func(context.Context) error) *Scheduler {
	return &Scheduler{
		name:     name,
		logger:   logger.With(zap.String("job", name)),
		interval: interval,
		taskFunc: taskFunc,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Name() string {
	return s.name
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrSchedulerAlreadyRunning
	}

	s.isRunning = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx, s.stopCh, s.doneCh)

	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts the scheduler and waits for the running job to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning || s.stopping {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.stopping = true
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh

	s.logger.Info("Scheduler stopped")
	return nil
}

// IsRunning returns whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.stopping = false
		s.mu.Unlock()
	}()

	// Execute immediately on start
	_ = s.executeTask(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context canceled")
			return
		case <-stopCh:
			s.logger.Info("Scheduler stop signal received")
			return
		case <-ticker.C:
			_ = s.executeTask(ctx)
		}
	}
}

// executeTask runs one job with a deadline just short of the interval. A
// panicking job is logged and the loop keeps going.
func (s *Scheduler) executeTask(ctx context.Context) (err error) {
	timeout := s.interval - time.Second
	if timeout <= 0 {
		timeout = s.interval
	}
	taskCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
			s.logger.Error("Task execution panicked", zap.Any("panic", r))
		}
	}()

	start := time.Now()
	err = s.taskFunc(taskCtx)
	if err != nil {
		s.logger.Error("Task execution failed", zap.Error(err), zap.Duration("took", time.Since(start)))
	} else {
		s.logger.Debug("Task execution completed", zap.Duration("took", time.Since(start)))
	}
	return err
}
