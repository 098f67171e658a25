// Package transport delivers composed envelopes through an OAuth mailbox or a
// transactional email API.
package transport

import (
	"context"
	"time"

	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/mailparse"
	"github.com/popeskul/outreach-engine/internal/models"
)

// Result identifies a message accepted by a provider. ConversationID is empty
// when the provider has no notion of threads.
type Result struct {
	ProviderMessageID string
	ConversationID    string
	Transport         string
}

type Transport interface {
	Name() string
	Send(ctx context.Context, env *mailer.Envelope) (Result, error)
}

// ThreadedMailbox is a user's own mailbox: it sends inside conversations and
// can read them back.
type ThreadedMailbox interface {
	Transport
	FetchConversation(ctx context.Context, conversationID string) (*Conversation, error)
}

type Conversation struct {
	ID       string
	Messages []RemoteMessage
}

// RemoteMessage is one message of a conversation as the provider reports it.
type RemoteMessage struct {
	ID           string
	ThreadID     string
	InternalDate time.Time
	Payload      *mailparse.Part
}

// MailboxFactory opens the mailbox of a single sender. Mailboxes are built per
// call from the sender's credential and never shared across users.
type MailboxFactory interface {
	Mailbox(ctx context.Context, sender models.Sender) (ThreadedMailbox, error)
}

// MailboxFactoryFunc adapts a function to MailboxFactory.
type MailboxFactoryFunc func(ctx context.Context, sender models.Sender) (ThreadedMailbox, error)

func (f MailboxFactoryFunc) Mailbox(ctx context.Context, sender models.Sender) (ThreadedMailbox, error) {
	return f(ctx, sender)
}
