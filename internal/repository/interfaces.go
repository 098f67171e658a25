package repository

import (
	"context"
	"time"

	"github.com/popeskul/outreach-engine/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	Message() MessageRepository
	User() UserRepository
	Coach() CoachRepository
	Activity() ActivityRepository
	Task() TaskRepository
}

// MessageRepository persists outbound and inbound messages.
type MessageRepository interface {
	// Create inserts msg and fills in its ID and timestamps. A duplicate
	// (user, provider message id) returns apperr.ErrDuplicate.
	Create(ctx context.Context, msg *models.Message) error
	// Update applies a partial update. A status change is checked against
	// the lifecycle and returns apperr.ErrIllegalTransition when not allowed.
	Update(ctx context.Context, id int64, upd models.MessageUpdate) error
	// UpdateStatus moves a message to status to if the lifecycle allows it.
	UpdateStatus(ctx context.Context, id int64, to models.MessageStatus) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	// FindByProviderMessageID returns nil without error when no message of
	// the user carries the id.
	FindByProviderMessageID(ctx context.Context, userID int64, providerMessageID string) (*models.Message, error)
	// FindOutboundByProviderMessageID looks a sent message up by provider id
	// alone, for provider callbacks that carry no user.
	FindOutboundByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error)
	// FindOutboundByHeaderMessageID returns nil without error when absent.
	FindOutboundByHeaderMessageID(ctx context.Context, userID int64, headerMessageID string) (*models.Message, error)
	FindByUserAndConversation(ctx context.Context, userID int64, conversationID string) ([]*models.Message, error)
	ListByUser(ctx context.Context, userID int64, filter models.ListFilter) ([]*models.Message, error)
	// ListConversations returns the distinct outbound conversations of a user.
	ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	// LatestOutbound returns the most recently sent outbound message of a
	// user, optionally restricted to one coach.
	LatestOutbound(ctx context.Context, userID int64, coachID *int64) (*models.Message, error)
	// MarkResponded flags every outbound message of a conversation as
	// answered and advances its status to replied where allowed.
	MarkResponded(ctx context.Context, userID int64, conversationID string) (int64, error)
	MarkRespondedByID(ctx context.Context, id int64) error

	// ClaimDueFollowUps leases up to claim.Limit due follow-ups to
	// claim.Token. Claimed rows are invisible to other claims until the lease
	// expires. MaxAttempts of zero means unlimited.
	ClaimDueFollowUps(ctx context.Context, claim models.FollowUpClaim) ([]*models.Message, error)
	ClaimDraft(ctx context.Context, id int64, token string, now, until time.Time) (bool, error)
	// RenewClaim reports false when token no longer holds the message.
	RenewClaim(ctx context.Context, id int64, token string, until time.Time) (bool, error)
	ReleaseClaim(ctx context.Context, id int64, token string) error
	// MarkSent moves a claimed draft or follow-up to sent. It fails with
	// ErrIllegalTransition when token does not hold the claim.
	MarkSent(ctx context.Context, id int64, token string, rec models.SentRecord) error
	RecordFollowUpFailure(ctx context.Context, id int64, token, errMsg string, nextAttemptAt time.Time) error
}

// UserRepository resolves senders and stores their mailbox tokens.
type UserRepository interface {
	GetSender(ctx context.Context, userID int64) (*models.Sender, error)
	FindByEmail(ctx context.Context, email string) (*models.Sender, error)
	SaveCredential(ctx context.Context, userID int64, cred models.Credential) error
	ListConnected(ctx context.Context) ([]int64, error)
}

type CoachRepository interface {
	Get(ctx context.Context, userID, coachID int64) (*models.Coach, error)
	FindByEmail(ctx context.Context, userID int64, email string) (*models.Coach, error)
	// MarkContacted advances a coach from new to contacted. It reports
	// whether the status changed.
	MarkContacted(ctx context.Context, coachID int64) (bool, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, a *models.Activity) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
}
