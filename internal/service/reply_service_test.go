package service_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/mailparse"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/service"
	servicemocks "github.com/popeskul/outreach-engine/internal/service/mocks"
	"github.com/popeskul/outreach-engine/internal/transport"
)

type stubMailbox struct {
	threads map[string]*transport.Conversation
	fetches int
}

func (m *stubMailbox) Name() string { return "stub" }

func (m *stubMailbox) Send(context.Context, *mailer.Envelope) (transport.Result, error) {
	return transport.Result{}, errors.New("not implemented")
}

func (m *stubMailbox) FetchConversation(_ context.Context, id string) (*transport.Conversation, error) {
	m.fetches++
	conv, ok := m.threads[id]
	if !ok {
		return nil, errors.New("thread not found")
	}
	return conv, nil
}

// memLocker is an in-process Locker.
type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *memLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = make(map[string]bool)
	}
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, true, nil
}

func remote(id, thread, from, text string) transport.RemoteMessage {
	return transport.RemoteMessage{
		ID:           id,
		ThreadID:     thread,
		InternalDate: t0.Add(time.Hour),
		Payload: &mailparse.Part{
			MimeType: "text/plain",
			Headers:  map[string]string{"from": from, "subject": "Re: Hi"},
			Body:     []byte(text),
		},
	}
}

func connectedSender(store *memStore) {
	store.addSender(models.Sender{
		UserID: 1,
		Email:  "athlete@example.com",
		Name:   "Alex Athlete",
		Credential: models.Credential{
			AccessToken:  sql.NullString{String: "access", Valid: true},
			RefreshToken: sql.NullString{String: "refresh", Valid: true},
		},
	})
}

func TestReplyService_ImportNewReplies(t *testing.T) {
	store := newMemStore()
	seedParties(store)
	connectedSender(store)
	parent := seedSent(store, "thread-1")

	mailbox := &stubMailbox{threads: map[string]*transport.Conversation{
		"thread-1": {ID: "thread-1", Messages: []transport.RemoteMessage{
			remote("parent-thread-1", "thread-1", "Alex Athlete <athlete@example.com>", "Hello coach"),
			remote("gm-2", "thread-1", "Coach Smith <Coach@School.edu>", "Sounds great!\n\nOn Mon, Alex wrote:\n> Hello coach"),
			remote("gm-3", "thread-1", "athlete@example.com", "Sent from my phone"),
		}},
	}}
	factory := transport.MailboxFactoryFunc(func(context.Context, models.Sender) (transport.ThreadedMailbox, error) {
		return mailbox, nil
	})

	svc := service.NewReplyService(config.ImporterConfig{LockTTLSeconds: 60}, store, factory, &memLocker{}, zap.NewNop())
	ctx := context.Background()

	res, err := svc.ImportNewReplies(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &service.ImportResult{Conversations: 1, Imported: 1, Skipped: 1}, res)

	inbound := store.byDirection(models.DirectionInbound)
	require.Len(t, inbound, 1)
	assert.Equal(t, "gm-2", inbound[0].ProviderMessageID.String)
	assert.Equal(t, "thread-1", inbound[0].ConversationID.String)
	assert.Equal(t, int64(10), inbound[0].CoachID)
	assert.Equal(t, models.MessageStatusReceived, inbound[0].Status)
	assert.Equal(t, "Sounds great!", inbound[0].BodyText.String)
	assert.Equal(t, t0.Add(time.Hour), inbound[0].ReceivedAt.Time)

	answered := store.get(parent.ID)
	assert.True(t, answered.HasResponded)
	assert.Equal(t, models.MessageStatusReplied, answered.Status)

	res, err = svc.ImportNewReplies(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &service.ImportResult{Conversations: 1, Skipped: 2}, res)
	assert.Len(t, store.byDirection(models.DirectionInbound), 1)
}

func TestReplyService_ImportFailures(t *testing.T) {
	t.Run("lock held", func(t *testing.T) {
		store := newMemStore()
		connectedSender(store)
		locker := &memLocker{}
		release, ok, err := locker.Acquire(context.Background(), "outreach:import-lock:1", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		defer release()

		svc := service.NewReplyService(config.ImporterConfig{}, store, nil, locker, zap.NewNop())
		_, err = svc.ImportNewReplies(context.Background(), 1)
		assert.ErrorIs(t, err, apperr.ErrImportInProgress)
	})

	t.Run("lock error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		locker := servicemocks.NewMockLocker(ctrl)
		locker.EXPECT().Acquire(gomock.Any(), "outreach:import-lock:7", 5*time.Minute).Return(nil, false, errors.New("redis down"))

		svc := service.NewReplyService(config.ImporterConfig{}, newMemStore(), nil, locker, zap.NewNop())
		_, err := svc.ImportNewReplies(context.Background(), 7)
		assert.EqualError(t, err, "redis down")
	})

	t.Run("no mailbox", func(t *testing.T) {
		store := newMemStore()
		seedParties(store)

		svc := service.NewReplyService(config.ImporterConfig{}, store, nil, &memLocker{}, zap.NewNop())
		_, err := svc.ImportNewReplies(context.Background(), 1)
		assert.ErrorIs(t, err, apperr.ErrNoProviderConfigured)
	})

	t.Run("fetch failure is counted", func(t *testing.T) {
		store := newMemStore()
		seedParties(store)
		connectedSender(store)
		seedSent(store, "thread-gone")
		mailbox := &stubMailbox{}

		svc := service.NewReplyService(config.ImporterConfig{}, store,
			transport.MailboxFactoryFunc(func(context.Context, models.Sender) (transport.ThreadedMailbox, error) { return mailbox, nil }),
			&memLocker{}, zap.NewNop())
		res, err := svc.ImportNewReplies(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, &service.ImportResult{Conversations: 1, Failed: 1}, res)
	})
}

func TestReplyService_ImportAll(t *testing.T) {
	store := newMemStore()
	seedParties(store)
	connectedSender(store)
	store.addSender(models.Sender{UserID: 2, Email: "nomailbox@example.com"})
	seedSent(store, "thread-1")

	mailbox := &stubMailbox{threads: map[string]*transport.Conversation{
		"thread-1": {ID: "thread-1", Messages: []transport.RemoteMessage{
			remote("parent-thread-1", "thread-1", "athlete@example.com", "Hello"),
			remote("gm-2", "thread-1", "coach@school.edu", "Yes"),
		}},
	}}
	svc := service.NewReplyService(config.ImporterConfig{}, store,
		transport.MailboxFactoryFunc(func(context.Context, models.Sender) (transport.ThreadedMailbox, error) { return mailbox, nil }),
		&memLocker{}, zap.NewNop())

	res, err := svc.ImportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, mailbox.fetches)
}

func TestReplyService_IngestInbound(t *testing.T) {
	newStore := func() (*memStore, *models.Message) {
		store := newMemStore()
		seedParties(store)
		store.addCoach(models.Coach{ID: 11, UserID: 1, Email: "other@college.edu", Status: models.CoachStatusContacted})
		parent := seedSent(store, "thread-1")
		store.insert(models.Message{
			UserID:            1,
			CoachID:           11,
			ProviderMessageID: models.NullString("resend-9"),
			Subject:           "Hello other coach",
			Direction:         models.DirectionOutbound,
			Status:            models.MessageStatusSent,
			SentAt:            models.NullTime(t0),
		})
		store.insert(models.Message{
			UserID:            1,
			CoachID:           10,
			ProviderMessageID: models.NullString("gm-out-7"),
			ConversationID:    models.NullString("thread-7"),
			HeaderMessageID:   models.NullString("out-7@example.com"),
			Subject:           "Camp dates",
			Direction:         models.DirectionOutbound,
			Status:            models.MessageStatusSent,
			SentAt:            models.NullTime(t0.Add(-30 * time.Minute)),
		})
		return store, parent
	}

	tests := []struct {
		name        string
		in          service.InboundEmail
		wantResult  string
		wantCoach   int64
		wantThread  string
		wantReplied string
		wantHeader  string
	}{
		{
			name: "correlated by In-Reply-To",
			in: service.InboundEmail{
				From:     "someone@unknown.org",
				To:       "athlete@example.com",
				Envelope: `{"to":["athlete@example.com"],"from":"someone@unknown.org"}`,
				Raw: "From: someone@unknown.org\r\nTo: athlete@example.com\r\nSubject: Re: Hi\r\n" +
					"Message-Id: <abc@unknown.org>\r\nIn-Reply-To: <parent-thread-1>\r\n\r\nForwarded to the right coach.\r\n",
			},
			wantResult:  service.InboundImported,
			wantCoach:   10,
			wantThread:  "thread-1",
			wantReplied: "parent-thread-1",
			wantHeader:  "abc@unknown.org",
		},
		{
			name: "correlated by stamped Message-ID",
			in: service.InboundEmail{
				From:     "assistant@school.edu",
				To:       "athlete@example.com",
				Envelope: `{"to":["athlete@example.com"],"from":"assistant@school.edu"}`,
				Raw: "From: assistant@school.edu\r\nTo: athlete@example.com\r\nSubject: Re: Camp dates\r\n" +
					"Message-Id: <reply-7@school.edu>\r\nIn-Reply-To: <out-7@example.com>\r\n" +
					"References: <unrelated@elsewhere.org> <out-7@example.com>\r\n\r\nSee you at camp.\r\n",
			},
			wantResult:  service.InboundImported,
			wantCoach:   10,
			wantThread:  "thread-7",
			wantReplied: "gm-out-7",
			wantHeader:  "reply-7@school.edu",
		},
		{
			name: "correlated by sender address",
			in: service.InboundEmail{
				From:      `"Other Coach" <Other@College.edu>`,
				To:        "Alex <athlete@example.com>",
				Subject:   "Re: Hello other coach",
				Text:      "Let's talk.\n> Hello other coach",
				MessageID: "<m-2@college.edu>",
			},
			wantResult:  service.InboundImported,
			wantCoach:   11,
			wantReplied: "resend-9",
			wantHeader:  "m-2@college.edu",
		},
		{
			name: "falls back to most recent outbound",
			in: service.InboundEmail{
				From: "stranger@nowhere.net",
				To:   "athlete@example.com",
				Text: "Who is this?",
			},
			wantResult:  service.InboundImported,
			wantCoach:   11,
			wantReplied: "resend-9",
		},
		{
			name:       "unknown recipient",
			in:         service.InboundEmail{From: "coach@school.edu", To: "nobody@example.com", Text: "hi"},
			wantResult: service.InboundIgnored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newStore()
			svc := service.NewReplyService(config.ImporterConfig{}, store, nil, &memLocker{}, zap.NewNop(),
				service.WithClock(func() time.Time { return t0.Add(2 * time.Hour) }))

			res, err := svc.IngestInbound(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, res.Result)

			inbound := store.byDirection(models.DirectionInbound)
			if tt.wantResult != service.InboundImported {
				assert.Empty(t, inbound)
				return
			}

			require.Len(t, inbound, 1)
			assert.Equal(t, res.MessageID, inbound[0].ID)
			assert.Equal(t, tt.wantCoach, inbound[0].CoachID)
			assert.Equal(t, tt.wantThread, inbound[0].ConversationID.String)
			assert.Equal(t, tt.wantHeader, inbound[0].HeaderMessageID.String)
			assert.NotContains(t, inbound[0].BodyText.String, ">")

			for _, out := range store.byDirection(models.DirectionOutbound) {
				want := out.ProviderMessageID.String == tt.wantReplied
				assert.Equal(t, want, out.HasResponded, out.ProviderMessageID.String)
			}

			again, err := svc.IngestInbound(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, service.InboundDuplicate, again.Result)
			assert.Len(t, store.byDirection(models.DirectionInbound), 1)
		})
	}
}

func TestReplyService_IngestInboundWithoutOutbound(t *testing.T) {
	store := newMemStore()
	seedParties(store)

	svc := service.NewReplyService(config.ImporterConfig{}, store, nil, &memLocker{}, zap.NewNop())
	res, err := svc.IngestInbound(context.Background(), service.InboundEmail{
		From: "stranger@nowhere.net",
		To:   "athlete@example.com",
		Text: strings.Repeat("hello ", 3),
	})
	require.NoError(t, err)
	assert.Equal(t, service.InboundIgnored, res.Result)
}
