package service

import (
	"time"

	"github.com/popeskul/outreach-engine/internal/api"
)

// SendRequest starts a new conversation with a coach.
type SendRequest struct {
	UserID   int64
	CoachID  int64
	Subject  string
	BodyHTML string
	BodyText string
	// FollowUpDays schedules a follow-up when positive.
	FollowUpDays int
}

// ReplyRequest answers inside a known conversation.
type ReplyRequest struct {
	UserID         int64
	ConversationID string
	Subject        string
	BodyHTML       string
	BodyText       string
}

type DraftRequest struct {
	UserID   int64
	CoachID  int64
	Subject  string
	BodyHTML string
	BodyText string
}

type FollowUpRequest struct {
	UserID          int64
	ParentMessageID int64
	CoachID         int64
	Subject         string
	BodyHTML        string
	BodyText        string
	DelayDays       int
}

// DeliveryEvent is a provider notification about an outbound message.
type DeliveryEvent struct {
	ProviderMessageID string
	Event             string
	Timestamp         time.Time
}

type SweepResult struct {
	Claimed int
	Sent    int
	// Skipped counts claimed follow-ups another sweep took over.
	Skipped int
	Failed  int
}

type ImportResult struct {
	Conversations int
	Imported      int
	Skipped       int
	Failed        int
}

// Add accumulates another user's counts.
func (r *ImportResult) Add(o *ImportResult) {
	if o == nil {
		return
	}
	r.Conversations += o.Conversations
	r.Imported += o.Imported
	r.Skipped += o.Skipped
	r.Failed += o.Failed
}

// InboundEmail is a message pushed by the inbound mail webhook.
type InboundEmail struct {
	From      string
	To        string
	Subject   string
	HTML      string
	Text      string
	Envelope  string
	MessageID string
	// Raw is the full RFC 5322 source when the provider includes it.
	Raw string
}

const (
	InboundImported  = "imported"
	InboundDuplicate = "duplicate"
	InboundIgnored   = "ignored"
)

type InboundResult struct {
	Result    string
	MessageID int64
}

type HealthStatus struct {
	Status          api.HealthResponseStatus
	SchedulerStatus api.HealthResponseSchedulerStatus
	DatabaseStatus  api.HealthResponseDatabaseStatus
	RedisStatus     api.HealthResponseRedisStatus
	CircuitBreakers map[string]api.CircuitBreakerState
}
