package service

import (
	"context"
	"time"

	"github.com/popeskul/outreach-engine/internal/api"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/transport"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

type OutreachService interface {
	SendNow(ctx context.Context, req SendRequest) (*models.Message, error)
	ReplyInThread(ctx context.Context, req ReplyRequest) (*models.Message, error)
	SaveDraft(ctx context.Context, req DraftRequest) (*models.Message, error)
	SendDraft(ctx context.Context, userID, messageID int64) (*models.Message, error)
	ListMessages(ctx context.Context, userID int64, filter models.ListFilter) ([]*models.Message, error)
	// ApplyDeliveryEvent reports whether the event changed the message.
	ApplyDeliveryEvent(ctx context.Context, ev DeliveryEvent) (bool, error)
}

type FollowUpService interface {
	ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (*models.Message, error)
	// ProcessDue sends every follow-up due at now that this call manages to
	// claim.
	ProcessDue(ctx context.Context, now time.Time) (*SweepResult, error)
}

type ReplyService interface {
	ImportNewReplies(ctx context.Context, userID int64) (*ImportResult, error)
	ImportAll(ctx context.Context) (*ImportResult, error)
	IngestInbound(ctx context.Context, in InboundEmail) (*InboundResult, error)
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth() *HealthStatus
}

// Deliverer sends an envelope on behalf of a user.
type Deliverer interface {
	Deliver(ctx context.Context, sender models.Sender, env *mailer.Envelope) (transport.Result, error)
}

// Locker serializes work per key across processes.
type Locker interface {
	// Acquire returns a release function, or ok=false when the key is held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// BreakerReporter exposes transport breakers for health checks.
type BreakerReporter interface {
	Name() string
	State() api.CircuitBreakerState
}
