package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/popeskul/outreach-engine/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.MessageStatus
		want     bool
	}{
		{models.MessageStatusDraft, models.MessageStatusSent, true},
		{models.MessageStatusDraft, models.MessageStatusScheduled, true},
		{models.MessageStatusScheduled, models.MessageStatusSent, true},
		{models.MessageStatusSent, models.MessageStatusDelivered, true},
		{models.MessageStatusSent, models.MessageStatusReplied, true},
		{models.MessageStatusDelivered, models.MessageStatusOpened, true},
		{models.MessageStatusOpened, models.MessageStatusReplied, true},

		{models.MessageStatusSent, models.MessageStatusDraft, false},
		{models.MessageStatusOpened, models.MessageStatusDelivered, false},
		{models.MessageStatusOpened, models.MessageStatusBounced, false},
		{models.MessageStatusReplied, models.MessageStatusOpened, false},
		{models.MessageStatusBounced, models.MessageStatusDelivered, false},
		{models.MessageStatusReceived, models.MessageStatusReplied, false},
		{models.MessageStatusScheduled, models.MessageStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, models.CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []models.MessageStatus{models.MessageStatusReplied, models.MessageStatusBounced, models.MessageStatusReceived} {
		assert.True(t, models.IsTerminal(s), s)
	}
	for _, s := range []models.MessageStatus{models.MessageStatusDraft, models.MessageStatusSent, models.MessageStatusOpened} {
		assert.False(t, models.IsTerminal(s), s)
	}
}

func TestSourcesOf(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.MessageStatus{models.MessageStatusSent, models.MessageStatusDelivered, models.MessageStatusOpened},
		models.SourcesOf(models.MessageStatusReplied))
	assert.Empty(t, models.SourcesOf(models.MessageStatusDraft))
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, models.NullString("").Valid)
	assert.True(t, models.NullString("x").Valid)
	assert.False(t, models.NullInt64(0).Valid)
	assert.Equal(t, int64(5), models.NullInt64(5).Int64)
}
