package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/models"
)

const senderColumns = `id, email, name, access_token, refresh_token, token_type, token_expires_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetSender(ctx context.Context, userID int64) (*models.Sender, error) {
	var s models.Sender
	err := r.db.GetContext(ctx, &s, `SELECT `+senderColumns+` FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &s, nil
}

// FindByEmail matches the address case-insensitively.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.Sender, error) {
	var s models.Sender
	err := r.db.GetContext(ctx, &s, `SELECT `+senderColumns+` FROM users WHERE LOWER(email) = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &s, nil
}

// SaveCredential stores refreshed tokens. An empty refresh token keeps the
// one on file, since providers do not always rotate it.
func (r *userRepository) SaveCredential(ctx context.Context, userID int64, cred models.Credential) error {
	query := `
		UPDATE users
		SET access_token = $2,
		    refresh_token = COALESCE($3, refresh_token),
		    token_type = COALESCE($4, token_type),
		    token_expires_at = $5,
		    updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, cred.AccessToken, cred.RefreshToken, cred.TokenType, cred.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	return nil
}

// ListConnected returns users with both mailbox tokens on file.
func (r *userRepository) ListConnected(ctx context.Context) ([]int64, error) {
	query := `
		SELECT id FROM users
		WHERE COALESCE(access_token, '') <> '' AND COALESCE(refresh_token, '') <> ''
		ORDER BY id
	`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("failed to list connected users: %w", err)
	}
	return ids, nil
}

type coachRepository struct {
	db *sqlx.DB
}

func NewCoachRepository(db *sqlx.DB) CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Get(ctx context.Context, userID, coachID int64) (*models.Coach, error) {
	var c models.Coach
	err := r.db.GetContext(ctx, &c,
		`SELECT id, user_id, email, name, status FROM coaches WHERE id = $1 AND user_id = $2`, coachID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: coach %d", apperr.ErrNotFound, coachID)
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}
	return &c, nil
}

func (r *coachRepository) FindByEmail(ctx context.Context, userID int64, email string) (*models.Coach, error) {
	var c models.Coach
	err := r.db.GetContext(ctx, &c, `
		SELECT id, user_id, email, name, status FROM coaches
		WHERE user_id = $1 AND LOWER(email) = $2
		ORDER BY id
		LIMIT 1`, userID, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: coach %s", apperr.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find coach by email: %w", err)
	}
	return &c, nil
}

func (r *coachRepository) MarkContacted(ctx context.Context, coachID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coaches SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
		coachID, models.CoachStatusContacted, models.CoachStatusNew)
	if err != nil {
		return false, fmt.Errorf("failed to mark coach contacted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *models.Activity) error {
	query := `
		INSERT INTO activities (user_id, coach_id, message_id, kind, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, a.UserID, a.CoachID, a.MessageID, a.Kind, a.Detail).
		Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, t *models.Task) error {
	query := `
		INSERT INTO tasks (user_id, coach_id, message_id, title, due_at, completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, t.UserID, t.CoachID, t.MessageID, t.Title, t.DueAt, t.Completed).
		Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}
