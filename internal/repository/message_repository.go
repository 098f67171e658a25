package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/models"
)

const messageColumns = `id, user_id, coach_id, provider_message_id, conversation_id, header_message_id,
	subject, body_html, body_text, direction, status, is_follow_up, has_responded, parent_message_id,
	scheduled_for, sent_at, received_at, failure_count, last_error, next_attempt_at, claim_token,
	created_at, updated_at`

// claimable lists the statuses a send claim may hold.
var claimable = statusStrings([]models.MessageStatus{models.MessageStatusDraft, models.MessageStatusScheduled})

const uniqueViolation = "23505"

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func statusStrings(statuses []models.MessageStatus) pq.StringArray {
	out := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Create inserts a new message.
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (user_id, coach_id, provider_message_id, conversation_id, header_message_id,
			subject, body_html, body_text, direction, status, is_follow_up, has_responded, parent_message_id,
			scheduled_for, sent_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		msg.UserID, msg.CoachID, msg.ProviderMessageID, msg.ConversationID, msg.HeaderMessageID,
		msg.Subject, msg.BodyHTML, msg.BodyText, msg.Direction, msg.Status, msg.IsFollowUp,
		msg.HasResponded, msg.ParentMessageID, msg.ScheduledFor, msg.SentAt, msg.ReceivedAt,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: provider message %s", apperr.ErrDuplicate, msg.ProviderMessageID.String)
		}
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// Update applies the non-nil fields of upd.
func (r *messageRepository) Update(ctx context.Context, id int64, upd models.MessageUpdate) error {
	sets := []string{}
	args := []interface{}{id}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.ProviderMessageID != nil {
		add("provider_message_id", models.NullString(*upd.ProviderMessageID))
	}
	if upd.ConversationID != nil {
		add("conversation_id", models.NullString(*upd.ConversationID))
	}
	if upd.Subject != nil {
		add("subject", *upd.Subject)
	}
	if upd.BodyHTML != nil {
		add("body_html", *upd.BodyHTML)
	}
	if upd.BodyText != nil {
		add("body_text", models.NullString(*upd.BodyText))
	}
	if upd.HasResponded != nil {
		add("has_responded", *upd.HasResponded)
	}
	if upd.SentAt != nil {
		add("sent_at", *upd.SentAt)
	}
	if upd.ScheduledFor != nil {
		add("scheduled_for", *upd.ScheduledFor)
	}

	where := "id = $1"
	if upd.Status != nil {
		add("status", *upd.Status)
		args = append(args, statusStrings(models.SourcesOf(*upd.Status)))
		where += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE messages SET %s, updated_at = NOW() WHERE %s`, strings.Join(sets, ", "), where)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: message %d", apperr.ErrDuplicate, id)
		}
		return fmt.Errorf("failed to update message: %w", err)
	}

	return r.explainNoRows(ctx, res, id, upd.Status)
}

// UpdateStatus performs a guarded lifecycle transition.
func (r *messageRepository) UpdateStatus(ctx context.Context, id int64, to models.MessageStatus) error {
	query := `
		UPDATE messages
		SET status = $2,
		    sent_at = CASE WHEN $2 = 'sent' THEN COALESCE(sent_at, NOW()) ELSE sent_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	res, err := r.db.ExecContext(ctx, query, id, to, statusStrings(models.SourcesOf(to)))
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}

	return r.explainNoRows(ctx, res, id, &to)
}

// explainNoRows turns an update that matched nothing into ErrNotFound or
// ErrIllegalTransition.
func (r *messageRepository) explainNoRows(ctx context.Context, res sql.Result, id int64, to *models.MessageStatus) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var current models.MessageStatus
	err = r.db.GetContext(ctx, &current, `SELECT status FROM messages WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: message %d", apperr.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load message status: %w", err)
	}
	if to != nil {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrIllegalTransition, current, *to)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	var msg models.Message
	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: message %d", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &msg, nil
}

// FindByProviderMessageID returns nil without error when nothing matches.
func (r *messageRepository) FindByProviderMessageID(ctx context.Context, userID int64, providerMessageID string) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE user_id = $1 AND provider_message_id = $2`

	var msg models.Message
	if err := r.db.GetContext(ctx, &msg, query, userID, providerMessageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find message by provider id: %w", err)
	}

	return &msg, nil
}

func (r *messageRepository) FindOutboundByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE provider_message_id = $1 AND direction = 'outbound'
		ORDER BY id DESC
		LIMIT 1
	`

	var msg models.Message
	if err := r.db.GetContext(ctx, &msg, query, providerMessageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: provider message %s", apperr.ErrNotFound, providerMessageID)
		}
		return nil, fmt.Errorf("failed to find message by provider id: %w", err)
	}

	return &msg, nil
}

// FindOutboundByHeaderMessageID resolves an RFC 5322 Message-ID stamped on
// one of the user's outbound messages. It returns nil without error when
// nothing matches.
func (r *messageRepository) FindOutboundByHeaderMessageID(ctx context.Context, userID int64, headerMessageID string) (*models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE user_id = $1 AND header_message_id = $2 AND direction = 'outbound'
		ORDER BY id DESC
		LIMIT 1
	`

	var msg models.Message
	if err := r.db.GetContext(ctx, &msg, query, userID, headerMessageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find message by header id: %w", err)
	}

	return &msg, nil
}

func (r *messageRepository) FindByUserAndConversation(ctx context.Context, userID int64, conversationID string) ([]*models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE user_id = $1 AND conversation_id = $2
		ORDER BY COALESCE(sent_at, received_at, created_at) ASC, id ASC
	`

	var messages []*models.Message
	if err := r.db.SelectContext(ctx, &messages, query, userID, conversationID); err != nil {
		return nil, fmt.Errorf("failed to get conversation messages: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) ListByUser(ctx context.Context, userID int64, filter models.ListFilter) ([]*models.Message, error) {
	conds := []string{"user_id = $1"}
	args := []interface{}{userID}
	add := func(column string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Status != nil {
		add("status", *filter.Status)
	}
	if filter.Direction != nil {
		add("direction", *filter.Direction)
	}
	if filter.CoachID != nil {
		add("coach_id", *filter.CoachID)
	}
	if filter.ConversationID != nil {
		add("conversation_id", *filter.ConversationID)
	}

	query := `SELECT ` + messageColumns + ` FROM messages WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, id DESC`

	var messages []*models.Message
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	query := `
		SELECT DISTINCT ON (conversation_id) conversation_id, coach_id
		FROM messages
		WHERE user_id = $1 AND direction = 'outbound' AND conversation_id IS NOT NULL
		ORDER BY conversation_id, sent_at DESC NULLS LAST
	`

	var conversations []models.Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return conversations, nil
}

func (r *messageRepository) LatestOutbound(ctx context.Context, userID int64, coachID *int64) (*models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE user_id = $1 AND direction = 'outbound' AND sent_at IS NOT NULL
		  AND ($2::BIGINT IS NULL OR coach_id = $2)
		ORDER BY sent_at DESC, id DESC
		LIMIT 1
	`

	var coach sql.NullInt64
	if coachID != nil {
		coach = sql.NullInt64{Int64: *coachID, Valid: true}
	}

	var msg models.Message
	if err := r.db.GetContext(ctx, &msg, query, userID, coach); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no outbound message for user %d", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get latest outbound message: %w", err)
	}

	return &msg, nil
}

func (r *messageRepository) MarkResponded(ctx context.Context, userID int64, conversationID string) (int64, error) {
	query := `
		UPDATE messages
		SET has_responded = TRUE,
		    status = CASE WHEN status = ANY($3) THEN 'replied' ELSE status END,
		    updated_at = NOW()
		WHERE user_id = $1 AND conversation_id = $2 AND direction = 'outbound' AND sent_at IS NOT NULL
	`

	res, err := r.db.ExecContext(ctx, query, userID, conversationID,
		statusStrings(models.SourcesOf(models.MessageStatusReplied)))
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation responded: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func (r *messageRepository) MarkRespondedByID(ctx context.Context, id int64) error {
	query := `
		UPDATE messages
		SET has_responded = TRUE,
		    status = CASE WHEN status = ANY($2) THEN 'replied' ELSE status END,
		    updated_at = NOW()
		WHERE id = $1 AND direction = 'outbound'
	`

	res, err := r.db.ExecContext(ctx, query, id, statusStrings(models.SourcesOf(models.MessageStatusReplied)))
	if err != nil {
		return fmt.Errorf("failed to mark message responded: %w", err)
	}
	return r.explainNoRows(ctx, res, id, nil)
}

// ClaimDueFollowUps leases due follow-ups to claim.Token with FOR UPDATE
// SKIP LOCKED so concurrent sweeps never claim the same row.
func (r *messageRepository) ClaimDueFollowUps(ctx context.Context, claim models.FollowUpClaim) ([]*models.Message, error) {
	query := `
		UPDATE messages
		SET claim_token = $3, next_attempt_at = $2, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM messages
			WHERE status = 'scheduled'
			  AND is_follow_up
			  AND scheduled_for <= $1
			  AND (next_attempt_at IS NULL OR next_attempt_at <= $1)
			  AND ($5::INT = 0 OR failure_count < $5::INT)
			ORDER BY scheduled_for ASC, id ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + messageColumns

	var messages []*models.Message
	err := r.db.SelectContext(ctx, &messages, query, claim.Now, claim.Until, claim.Token, claim.Limit, claim.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due follow-ups: %w", err)
	}

	return messages, nil
}

// ClaimDraft leases a draft to token until the given time. It reports false
// when the message is not a draft or another live claim holds it.
func (r *messageRepository) ClaimDraft(ctx context.Context, id int64, token string, now, until time.Time) (bool, error) {
	query := `
		UPDATE messages
		SET claim_token = $2, next_attempt_at = $4, updated_at = NOW()
		WHERE id = $1
		  AND status = 'draft'
		  AND (claim_token IS NULL OR next_attempt_at IS NULL OR next_attempt_at <= $3)
	`

	res, err := r.db.ExecContext(ctx, query, id, token, now, until)
	if err != nil {
		return false, fmt.Errorf("failed to claim draft: %w", err)
	}
	return affected(res)
}

// RenewClaim extends a claim that token still holds. It reports false once
// another claim has taken the message over or the message left the
// claimable statuses.
func (r *messageRepository) RenewClaim(ctx context.Context, id int64, token string, until time.Time) (bool, error) {
	query := `
		UPDATE messages
		SET next_attempt_at = $3, updated_at = NOW()
		WHERE id = $1 AND claim_token = $2 AND status = ANY($4)
	`

	res, err := r.db.ExecContext(ctx, query, id, token, until, claimable)
	if err != nil {
		return false, fmt.Errorf("failed to renew claim: %w", err)
	}
	return affected(res)
}

// ReleaseClaim drops a claim so the message can be claimed again at once.
func (r *messageRepository) ReleaseClaim(ctx context.Context, id int64, token string) error {
	query := `
		UPDATE messages
		SET claim_token = NULL, next_attempt_at = NULL, updated_at = NOW()
		WHERE id = $1 AND claim_token = $2 AND status = ANY($3)
	`

	if _, err := r.db.ExecContext(ctx, query, id, token, claimable); err != nil {
		return fmt.Errorf("failed to release claim: %w", err)
	}
	return nil
}

// MarkSent flips a claimed draft or follow-up to sent in place. Only the
// holder of the claim may do so.
func (r *messageRepository) MarkSent(ctx context.Context, id int64, token string, rec models.SentRecord) error {
	query := `
		UPDATE messages
		SET status = 'sent',
		    sent_at = $3,
		    provider_message_id = COALESCE($4, provider_message_id),
		    conversation_id = COALESCE($5, conversation_id),
		    header_message_id = COALESCE($6, header_message_id),
		    claim_token = NULL,
		    next_attempt_at = NULL,
		    last_error = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND claim_token = $2 AND status = ANY($7)
	`

	res, err := r.db.ExecContext(ctx, query, id, token, rec.SentAt,
		models.NullString(rec.ProviderMessageID), models.NullString(rec.ConversationID),
		models.NullString(rec.HeaderMessageID), claimable)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: provider message %s", apperr.ErrDuplicate, rec.ProviderMessageID)
		}
		return fmt.Errorf("failed to mark message sent: %w", err)
	}

	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: message %d is not claimed by this sender", apperr.ErrIllegalTransition, id)
	}
	return nil
}

// RecordFollowUpFailure counts a failed attempt, drops the claim and makes
// the follow-up due again at nextAttemptAt.
func (r *messageRepository) RecordFollowUpFailure(ctx context.Context, id int64, token, errMsg string, nextAttemptAt time.Time) error {
	query := `
		UPDATE messages
		SET failure_count = failure_count + 1,
		    last_error = $3,
		    next_attempt_at = $4,
		    claim_token = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND claim_token = $2 AND status = 'scheduled'
	`

	if _, err := r.db.ExecContext(ctx, query, id, token, errMsg, nextAttemptAt); err != nil {
		return fmt.Errorf("failed to record follow-up failure: %w", err)
	}

	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
