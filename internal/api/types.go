// Package api defines the HTTP contract of the outreach service: request and
// response bodies, enumerations shared with the models, and the server
// interface the handler implements.
package api

import "time"

// MessageStatus is the lifecycle status of a message.
type MessageStatus string

const (
	Draft     MessageStatus = "draft"
	Scheduled MessageStatus = "scheduled"
	Sent      MessageStatus = "sent"
	Delivered MessageStatus = "delivered"
	Opened    MessageStatus = "opened"
	Replied   MessageStatus = "replied"
	Bounced   MessageStatus = "bounced"
	Received  MessageStatus = "received"
)

// MessageDirection tells whether the user sent or received a message.
type MessageDirection string

const (
	Outbound MessageDirection = "outbound"
	Inbound  MessageDirection = "inbound"
)

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

const (
	Healthy   HealthResponseStatus = "healthy"
	Degraded  HealthResponseStatus = "degraded"
	Unhealthy HealthResponseStatus = "unhealthy"
)

// HealthResponseSchedulerStatus defines model for HealthResponse.SchedulerStatus.
type HealthResponseSchedulerStatus string

const (
	HealthResponseSchedulerStatusRunning HealthResponseSchedulerStatus = "running"
	HealthResponseSchedulerStatusStopped HealthResponseSchedulerStatus = "stopped"
)

// HealthResponseDatabaseStatus defines model for HealthResponse.DatabaseStatus.
type HealthResponseDatabaseStatus string

const (
	HealthResponseDatabaseStatusConnected    HealthResponseDatabaseStatus = "connected"
	HealthResponseDatabaseStatusDisconnected HealthResponseDatabaseStatus = "disconnected"
)

// HealthResponseRedisStatus defines model for HealthResponse.RedisStatus.
type HealthResponseRedisStatus string

const (
	HealthResponseRedisStatusConnected    HealthResponseRedisStatus = "connected"
	HealthResponseRedisStatusDisconnected HealthResponseRedisStatus = "disconnected"
)

// CircuitBreakerState mirrors gobreaker states.
type CircuitBreakerState string

const (
	Closed   CircuitBreakerState = "closed"
	HalfOpen CircuitBreakerState = "half-open"
	Open     CircuitBreakerState = "open"
)

// SchedulerResponseStatus defines model for SchedulerResponse.Status.
type SchedulerResponseStatus string

const (
	SchedulerResponseStatusStarted SchedulerResponseStatus = "started"
	SchedulerResponseStatusStopped SchedulerResponseStatus = "stopped"
)

// Message is the wire form of a stored message.
type Message struct {
	Id                int64            `json:"id"`
	UserId            int64            `json:"user_id"`
	CoachId           int64            `json:"coach_id"`
	Direction         MessageDirection `json:"direction"`
	Status            MessageStatus    `json:"status"`
	Subject           string           `json:"subject"`
	BodyHtml          string           `json:"body_html"`
	BodyText          *string          `json:"body_text,omitempty"`
	ProviderMessageId *string          `json:"provider_message_id,omitempty"`
	ConversationId    *string          `json:"conversation_id,omitempty"`
	ParentMessageId   *int64           `json:"parent_message_id,omitempty"`
	IsFollowUp        bool             `json:"is_follow_up"`
	HasResponded      bool             `json:"has_responded"`
	CreatedAt         time.Time        `json:"created_at"`
	SentAt            *time.Time       `json:"sent_at,omitempty"`
	ScheduledFor      *time.Time       `json:"scheduled_for,omitempty"`
	ReceivedAt        *time.Time       `json:"received_at,omitempty"`
}

// MessageListResponse wraps a list of messages.
type MessageListResponse struct {
	Messages []Message `json:"messages"`
}

// SendMessageRequest is the body of a send-now call.
type SendMessageRequest struct {
	CoachId      int64   `json:"coach_id"`
	Subject      string  `json:"subject"`
	BodyHtml     string  `json:"body_html"`
	BodyText     *string `json:"body_text,omitempty"`
	FollowUpDays *int    `json:"follow_up_days,omitempty"`
}

// ReplyRequest is the body of a threaded reply.
type ReplyRequest struct {
	Subject  string  `json:"subject"`
	BodyHtml string  `json:"body_html"`
	BodyText *string `json:"body_text,omitempty"`
}

// DraftRequest is the body of a save-draft call.
type DraftRequest struct {
	CoachId  int64   `json:"coach_id"`
	Subject  string  `json:"subject"`
	BodyHtml string  `json:"body_html"`
	BodyText *string `json:"body_text,omitempty"`
}

// FollowUpRequest is the body of a schedule-follow-up call.
type FollowUpRequest struct {
	ParentMessageId int64   `json:"parent_message_id"`
	CoachId         int64   `json:"coach_id"`
	Subject         string  `json:"subject"`
	BodyHtml        string  `json:"body_html"`
	BodyText        *string `json:"body_text,omitempty"`
	DelayDays       int     `json:"delay_days"`
}

// ImportResponse reports the outcome of a reply import.
type ImportResponse struct {
	Conversations int `json:"conversations"`
	Imported      int `json:"imported"`
	Skipped       int `json:"skipped"`
	Failed        int `json:"failed"`
}

// SweepResponse reports the outcome of a follow-up sweep.
type SweepResponse struct {
	Claimed int `json:"claimed"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// InboundEmail is the flattened payload posted by the inbound mail webhook.
type InboundEmail struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Html      string `json:"html"`
	Text      string `json:"text"`
	Envelope  string `json:"envelope"`
	MessageId string `json:"message_id"`
	Email     string `json:"email"`
}

// InboundResponse reports the outcome of a single webhook ingest.
type InboundResponse struct {
	Result    string `json:"result"`
	MessageId *int64 `json:"message_id,omitempty"`
}

// DeliveryEvent is a provider delivery notification.
type DeliveryEvent struct {
	ProviderMessageId string    `json:"provider_message_id"`
	Event             string    `json:"event"`
	Timestamp         time.Time `json:"timestamp"`
}

// DeliveryEventsResponse counts applied and ignored delivery events.
type DeliveryEventsResponse struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// SchedulerResponse defines model for SchedulerResponse.
type SchedulerResponse struct {
	Status  SchedulerResponseStatus `json:"status"`
	Message string                  `json:"message"`
}

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status          HealthResponseStatus           `json:"status"`
	Timestamp       time.Time                      `json:"timestamp"`
	SchedulerStatus *HealthResponseSchedulerStatus `json:"scheduler_status,omitempty"`
	DatabaseStatus  *HealthResponseDatabaseStatus  `json:"database_status,omitempty"`
	RedisStatus     *HealthResponseRedisStatus     `json:"redis_status,omitempty"`
	CircuitBreakers map[string]CircuitBreakerState `json:"circuit_breakers,omitempty"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error     string     `json:"error"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ListMessagesParams defines parameters for ListMessages.
type ListMessagesParams struct {
	Status         *MessageStatus    `form:"status,omitempty" json:"status,omitempty"`
	Direction      *MessageDirection `form:"direction,omitempty" json:"direction,omitempty"`
	CoachId        *int64            `form:"coach_id,omitempty" json:"coach_id,omitempty"`
	ConversationId *string           `form:"conversation_id,omitempty" json:"conversation_id,omitempty"`
}
