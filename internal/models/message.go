// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"time"

	"github.com/popeskul/outreach-engine/internal/api"
)

type MessageStatus = api.MessageStatus

const (
	MessageStatusDraft     = api.Draft
	MessageStatusScheduled = api.Scheduled
	MessageStatusSent      = api.Sent
	MessageStatusDelivered = api.Delivered
	MessageStatusOpened    = api.Opened
	MessageStatusReplied   = api.Replied
	MessageStatusBounced   = api.Bounced
	MessageStatusReceived  = api.Received
)

type Direction = api.MessageDirection

const (
	DirectionOutbound = api.Outbound
	DirectionInbound  = api.Inbound
)

// transitions lists the statuses reachable from each status. Statuses that
// are missing are terminal.
var transitions = map[MessageStatus][]MessageStatus{
	MessageStatusDraft:     {MessageStatusScheduled, MessageStatusSent},
	MessageStatusScheduled: {MessageStatusSent},
	MessageStatusSent:      {MessageStatusDelivered, MessageStatusOpened, MessageStatusReplied, MessageStatusBounced},
	MessageStatusDelivered: {MessageStatusOpened, MessageStatusReplied, MessageStatusBounced},
	MessageStatusOpened:    {MessageStatusReplied},
}

// CanTransition reports whether a message may move from one status to another.
func CanTransition(from, to MessageStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SourcesOf returns every status that may transition into to.
func SourcesOf(to MessageStatus) []MessageStatus {
	var out []MessageStatus
	for from, targets := range transitions {
		for _, s := range targets {
			if s == to {
				out = append(out, from)
			}
		}
	}
	return out
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s MessageStatus) bool {
	return len(transitions[s]) == 0
}

// Message represents a message in the database.
type Message struct {
	ID                int64          `db:"id" json:"id"`
	UserID            int64          `db:"user_id" json:"user_id"`
	CoachID           int64          `db:"coach_id" json:"coach_id"`
	ProviderMessageID sql.NullString `db:"provider_message_id" json:"provider_message_id,omitempty"`
	ConversationID    sql.NullString `db:"conversation_id" json:"conversation_id,omitempty"`
	HeaderMessageID   sql.NullString `db:"header_message_id" json:"header_message_id,omitempty"`
	Subject           string         `db:"subject" json:"subject"`
	BodyHTML          string         `db:"body_html" json:"body_html"`
	BodyText          sql.NullString `db:"body_text" json:"body_text,omitempty"`
	Direction         Direction      `db:"direction" json:"direction"`
	Status            MessageStatus  `db:"status" json:"status"`
	IsFollowUp        bool           `db:"is_follow_up" json:"is_follow_up"`
	HasResponded      bool           `db:"has_responded" json:"has_responded"`
	ParentMessageID   sql.NullInt64  `db:"parent_message_id" json:"parent_message_id,omitempty"`
	ScheduledFor      sql.NullTime   `db:"scheduled_for" json:"scheduled_for,omitempty"`
	SentAt            sql.NullTime   `db:"sent_at" json:"sent_at,omitempty"`
	ReceivedAt        sql.NullTime   `db:"received_at" json:"received_at,omitempty"`
	FailureCount      int            `db:"failure_count" json:"failure_count"`
	LastError         sql.NullString `db:"last_error" json:"last_error,omitempty"`
	NextAttemptAt     sql.NullTime   `db:"next_attempt_at" json:"next_attempt_at,omitempty"`
	ClaimToken        sql.NullString `db:"claim_token" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// MessageUpdate is a partial update. Nil fields are left untouched.
type MessageUpdate struct {
	Status            *MessageStatus
	ProviderMessageID *string
	ConversationID    *string
	Subject           *string
	BodyHTML          *string
	BodyText          *string
	HasResponded      *bool
	SentAt            *time.Time
	ScheduledFor      *time.Time
}

// FollowUpClaim selects due follow-ups for one sweep and leases them to
// Token until Until.
type FollowUpClaim struct {
	Token       string
	Now         time.Time
	Until       time.Time
	Limit       int
	MaxAttempts int
}

// SentRecord is what a transport reported for a claimed message.
type SentRecord struct {
	SentAt            time.Time
	ProviderMessageID string
	ConversationID    string
	HeaderMessageID   string
}

// ListFilter narrows ListByUser.
type ListFilter struct {
	Status         *MessageStatus
	Direction      *Direction
	CoachID        *int64
	ConversationID *string
}

// Conversation is a known outbound thread and the coach it was sent to.
type Conversation struct {
	ConversationID string `db:"conversation_id"`
	CoachID        int64  `db:"coach_id"`
}

// NullString wraps a possibly empty string.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullTime wraps a time.
func NullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// NullInt64 wraps an id. Zero is treated as absent.
func NullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}
