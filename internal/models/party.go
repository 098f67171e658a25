package models

import (
	"database/sql"
	"time"
)

type CoachStatus string

const (
	CoachStatusNew       CoachStatus = "new"
	CoachStatusContacted CoachStatus = "contacted"
)

// Credential holds the mailbox OAuth tokens of a user.
type Credential struct {
	AccessToken  sql.NullString `db:"access_token"`
	RefreshToken sql.NullString `db:"refresh_token"`
	TokenType    sql.NullString `db:"token_type"`
	ExpiresAt    sql.NullTime   `db:"token_expires_at"`
}

// HasMailbox reports whether both tokens are on file.
func (c Credential) HasMailbox() bool {
	return c.AccessToken.Valid && c.AccessToken.String != "" &&
		c.RefreshToken.Valid && c.RefreshToken.String != ""
}

// Sender is the user on whose behalf messages are sent.
type Sender struct {
	UserID int64  `db:"id"`
	Email  string `db:"email"`
	Name   string `db:"name"`
	Credential
}

// Coach is the counterpart of a conversation.
type Coach struct {
	ID     int64       `db:"id"`
	UserID int64       `db:"user_id"`
	Email  string      `db:"email"`
	Name   string      `db:"name"`
	Status CoachStatus `db:"status"`
}

type ActivityKind string

const (
	ActivityMessageSent      ActivityKind = "message_sent"
	ActivityReplySent        ActivityKind = "reply_sent"
	ActivityFollowUpSchedule ActivityKind = "follow_up_scheduled"
	ActivityFollowUpSent     ActivityKind = "follow_up_sent"
	ActivityReplyReceived    ActivityKind = "reply_received"
)

// Activity is an audit trail entry.
type Activity struct {
	ID        int64         `db:"id"`
	UserID    int64         `db:"user_id"`
	CoachID   int64         `db:"coach_id"`
	MessageID sql.NullInt64 `db:"message_id"`
	Kind      ActivityKind  `db:"kind"`
	Detail    string        `db:"detail"`
	CreatedAt time.Time     `db:"created_at"`
}

// Task is a user-facing reminder created alongside a scheduled follow-up.
type Task struct {
	ID        int64         `db:"id"`
	UserID    int64         `db:"user_id"`
	CoachID   int64         `db:"coach_id"`
	MessageID sql.NullInt64 `db:"message_id"`
	Title     string        `db:"title"`
	DueAt     time.Time     `db:"due_at"`
	Completed bool          `db:"completed"`
	CreatedAt time.Time     `db:"created_at"`
}
