package transport

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/metrics"
	"github.com/popeskul/outreach-engine/internal/models"
)

// Fallback is a transport that may be switched off by configuration.
type Fallback interface {
	Transport
	Enabled() bool
}

// Selector picks the transport for each send: the sender's own mailbox when
// connected, otherwise the transactional API.
type Selector struct {
	mailboxes MailboxFactory
	fallback  Fallback
	logger    *zap.Logger
}

// NewSelector builds a selector. Either argument may be nil.
func NewSelector(mailboxes MailboxFactory, fallback Fallback, logger *zap.Logger) *Selector {
	return &Selector{
		mailboxes: mailboxes,
		fallback:  fallback,
		logger:    logger,
	}
}

// Deliver sends env on behalf of sender. Mailbox failures are logged and
// the transactional path is tried next; only a fallback failure reaches the
// caller.
func (s *Selector) Deliver(ctx context.Context, sender models.Sender, env *mailer.Envelope) (Result, error) {
	mailboxTried := false

	if s.mailboxes != nil && sender.HasMailbox() {
		mailboxTried = true
		res, err := s.sendViaMailbox(ctx, sender, env)
		if err == nil {
			return res, nil
		}
		s.logger.Warn("Mailbox send failed, falling back",
			zap.Int64("userID", sender.UserID),
			zap.Bool("reply", env.IsReply()),
			zap.Error(err))
	}

	if s.fallback == nil || !s.fallback.Enabled() {
		return Result{}, apperr.ErrNoProviderConfigured
	}
	if mailboxTried {
		metrics.TransportFallbackTotal.Inc()
	}

	res, err := s.send(ctx, s.fallback, env)
	if err != nil {
		s.logger.Error("Transactional send failed",
			zap.Int64("userID", sender.UserID),
			zap.Error(err))
		return Result{}, fmt.Errorf("%w: %v", apperr.ErrTransportRejected, err)
	}
	return res, nil
}

func (s *Selector) sendViaMailbox(ctx context.Context, sender models.Sender, env *mailer.Envelope) (Result, error) {
	mb, err := s.mailboxes.Mailbox(ctx, sender)
	if err != nil {
		return Result{}, err
	}
	return s.send(ctx, mb, env)
}

func (s *Selector) send(ctx context.Context, t Transport, env *mailer.Envelope) (Result, error) {
	start := time.Now()
	res, err := t.Send(ctx, env)
	metrics.TransportSendDuration.WithLabelValues(t.Name()).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.TransportSendTotal.WithLabelValues(t.Name(), outcome).Inc()
	return res, err
}
