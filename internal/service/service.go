package service

import (
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/repository"
	"github.com/popeskul/outreach-engine/internal/transport"
)

type Service struct {
	Outreach  OutreachService
	FollowUp  FollowUpService
	Reply     ReplyService
	Scheduler SchedulerService
	Health    HealthService
}

// Option customizes service construction.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewService wires the transports and every service on top of repo.
func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	mailboxes := transport.NewGmailFactory(cfg.Mailbox, cfg.Transport, repo.User().SaveCredential, logger)
	transactional := transport.NewTransactional(cfg.Transactional, cfg.Transport, logger)
	selector := transport.NewSelector(mailboxes, transactional, logger)

	followUps := NewFollowUpService(cfg.Scheduler, repo, selector, logger, opts...)
	outreach := NewOutreachService(repo, selector, followUps, logger, opts...)
	replies := NewReplyService(cfg.Importer, repo, mailboxes, NewRedisLocker(redisClient, logger), logger, opts...)
	schedulerService := NewSchedulerService(cfg, followUps, replies, logger, opts...)
	healthService := NewHealthService(repo, redisClient, schedulerService, mailboxes, transactional.Breaker())

	return &Service{
		Outreach:  outreach,
		FollowUp:  followUps,
		Reply:     replies,
		Scheduler: schedulerService,
		Health:    healthService,
	}
}
