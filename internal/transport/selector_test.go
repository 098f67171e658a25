package transport_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/transport"
)

type fakeTransport struct {
	name    string
	enabled bool
	result  transport.Result
	err     error
	calls   int
}

func (f *fakeTransport) Name() string  { return f.name }
func (f *fakeTransport) Enabled() bool { return f.enabled }

func (f *fakeTransport) Send(_ context.Context, _ *mailer.Envelope) (transport.Result, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeTransport) FetchConversation(_ context.Context, id string) (*transport.Conversation, error) {
	return &transport.Conversation{ID: id}, nil
}

func connectedSender() models.Sender {
	return models.Sender{
		UserID: 7,
		Email:  "athlete@example.com",
		Credential: models.Credential{
			AccessToken:  models.NullString("access"),
			RefreshToken: models.NullString("refresh"),
		},
	}
}

func factoryFor(mb *fakeTransport, err error) transport.MailboxFactory {
	return transport.MailboxFactoryFunc(func(context.Context, models.Sender) (transport.ThreadedMailbox, error) {
		if err != nil {
			return nil, err
		}
		return mb, nil
	})
}

func TestSelector_Deliver(t *testing.T) {
	env := &mailer.Envelope{From: "athlete@example.com", To: "coach@school.edu", Subject: "Hi", HTML: "<p>Hi</p>"}

	tests := []struct {
		name            string
		sender          models.Sender
		mailbox         *fakeTransport
		factoryErr      error
		fallback        *fakeTransport
		expected        transport.Result
		expectedErr     error
		mailboxCalls    int
		transactionalOn int
	}{
		{
			name:         "mailbox success",
			sender:       connectedSender(),
			mailbox:      &fakeTransport{name: "mailbox", result: transport.Result{ProviderMessageID: "m1", ConversationID: "t1"}},
			fallback:     &fakeTransport{name: "transactional", enabled: true},
			expected:     transport.Result{ProviderMessageID: "m1", ConversationID: "t1"},
			mailboxCalls: 1,
		},
		{
			name:            "mailbox failure falls back without conversation",
			sender:          connectedSender(),
			mailbox:         &fakeTransport{name: "mailbox", err: errors.New("token revoked")},
			fallback:        &fakeTransport{name: "transactional", enabled: true, result: transport.Result{ProviderMessageID: "re_1"}},
			expected:        transport.Result{ProviderMessageID: "re_1"},
			mailboxCalls:    1,
			transactionalOn: 1,
		},
		{
			name:            "factory failure falls back",
			sender:          connectedSender(),
			mailbox:         &fakeTransport{name: "mailbox"},
			factoryErr:      errors.New("bad client"),
			fallback:        &fakeTransport{name: "transactional", enabled: true, result: transport.Result{ProviderMessageID: "re_2"}},
			expected:        transport.Result{ProviderMessageID: "re_2"},
			transactionalOn: 1,
		},
		{
			name:            "no credential goes straight to transactional",
			sender:          models.Sender{UserID: 7, Email: "athlete@example.com"},
			mailbox:         &fakeTransport{name: "mailbox"},
			fallback:        &fakeTransport{name: "transactional", enabled: true, result: transport.Result{ProviderMessageID: "re_3"}},
			expected:        transport.Result{ProviderMessageID: "re_3"},
			transactionalOn: 1,
		},
		{
			name:        "nothing configured",
			sender:      models.Sender{UserID: 7},
			mailbox:     &fakeTransport{name: "mailbox"},
			fallback:    &fakeTransport{name: "transactional"},
			expectedErr: apperr.ErrNoProviderConfigured,
		},
		{
			name:         "mailbox failure without fallback",
			sender:       connectedSender(),
			mailbox:      &fakeTransport{name: "mailbox", err: errors.New("503")},
			fallback:     &fakeTransport{name: "transactional"},
			expectedErr:  apperr.ErrNoProviderConfigured,
			mailboxCalls: 1,
		},
		{
			name:            "both fail",
			sender:          connectedSender(),
			mailbox:         &fakeTransport{name: "mailbox", err: errors.New("503")},
			fallback:        &fakeTransport{name: "transactional", enabled: true, err: errors.New("422")},
			expectedErr:     apperr.ErrTransportRejected,
			mailboxCalls:    1,
			transactionalOn: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := transport.NewSelector(factoryFor(tt.mailbox, tt.factoryErr), tt.fallback, zap.NewNop())

			res, err := s.Deliver(context.Background(), tt.sender, env)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, res)
			}
			assert.Equal(t, tt.mailboxCalls, tt.mailbox.calls)
			assert.Equal(t, tt.transactionalOn, tt.fallback.calls)
		})
	}
}

func TestSelector_NilCollaborators(t *testing.T) {
	s := transport.NewSelector(nil, nil, zap.NewNop())
	_, err := s.Deliver(context.Background(), connectedSender(), &mailer.Envelope{To: "x@y.z", Text: "x"})
	assert.ErrorIs(t, err, apperr.ErrNoProviderConfigured)
}
