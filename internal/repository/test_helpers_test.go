package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/repository"
)

func insertUser(t *testing.T, db *sqlx.DB, email string, connected bool) int64 {
	t.Helper()
	var access, refresh *string
	if connected {
		a, r := "access-"+email, "refresh-"+email
		access, refresh = &a, &r
	}

	var id int64
	err := db.QueryRow(`
		INSERT INTO users (email, name, access_token, refresh_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, email, "User "+email, access, refresh).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertCoach(t *testing.T, db *sqlx.DB, userID int64, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`
		INSERT INTO coaches (user_id, email, name)
		VALUES ($1, $2, $3)
		RETURNING id`, userID, email, "Coach "+email).Scan(&id)
	require.NoError(t, err)
	return id
}

func sentMessage(userID, coachID int64, providerID, conversationID string, sentAt time.Time) *models.Message {
	return &models.Message{
		UserID:            userID,
		CoachID:           coachID,
		ProviderMessageID: models.NullString(providerID),
		ConversationID:    models.NullString(conversationID),
		Subject:           "Recruiting",
		BodyHTML:          "<p>Hello</p>",
		Direction:         models.DirectionOutbound,
		Status:            models.MessageStatusSent,
		SentAt:            models.NullTime(sentAt),
	}
}

func followUp(userID, coachID, parentID int64, scheduledFor time.Time) *models.Message {
	return &models.Message{
		UserID:          userID,
		CoachID:         coachID,
		Subject:         "Following up",
		BodyHTML:        "<p>Checking in</p>",
		Direction:       models.DirectionOutbound,
		Status:          models.MessageStatusScheduled,
		IsFollowUp:      true,
		ParentMessageID: models.NullInt64(parentID),
		ScheduledFor:    models.NullTime(scheduledFor),
	}
}

func createMessage(t *testing.T, repo repository.MessageRepository, msg *models.Message) *models.Message {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), msg))
	return msg
}
