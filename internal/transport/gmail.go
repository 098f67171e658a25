package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/popeskul/outreach-engine/internal/api"
	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/mailparse"
	"github.com/popeskul/outreach-engine/internal/models"
)

const gmailName = "mailbox"

var googleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// ErrNoMailbox is returned when a sender has not connected a mailbox.
var ErrNoMailbox = errors.New("mailbox not connected")

// TokenSaver persists a credential after the OAuth library refreshed it.
type TokenSaver func(ctx context.Context, userID int64, cred models.Credential) error

// GmailFactory opens Gmail mailboxes for individual senders. Each sender
// trips its own breaker.
type GmailFactory struct {
	oauth   *oauth2.Config
	cfg     config.MailboxConfig
	timeout time.Duration
	saver   TokenSaver
	logger  *zap.Logger

	cbCfg    config.CircuitBreakerConfig
	mu       sync.Mutex
	breakers map[int64]*CircuitBreaker

	// httpClient replaces the OAuth client when set. Used in tests.
	httpClient *http.Client
}

type GmailOption func(*GmailFactory)

// WithHTTPClient bypasses OAuth and sends every request with c.
func WithHTTPClient(c *http.Client) GmailOption {
	return func(f *GmailFactory) { f.httpClient = c }
}

func NewGmailFactory(
	cfg config.MailboxConfig,
	tcfg config.TransportConfig,
	saver TokenSaver,
	logger *zap.Logger,
	opts ...GmailOption,
) *GmailFactory {
	f := &GmailFactory{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     googleEndpoint,
			Scopes:       []string{gmail.GmailSendScope, gmail.GmailReadonlyScope},
		},
		cfg:     cfg,
		timeout:  tcfg.Timeout(),
		saver:    saver,
		logger:   logger,
		cbCfg:    tcfg.CircuitBreaker,
		breakers: make(map[int64]*CircuitBreaker),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *GmailFactory) breakerFor(userID int64) *CircuitBreaker {
	f.mu.Lock()
	defer f.mu.Unlock()

	cb, ok := f.breakers[userID]
	if !ok {
		cb = NewCircuitBreaker(fmt.Sprintf("%s-%d", gmailName, userID), &f.cbCfg, f.logger)
		f.breakers[userID] = cb
	}
	return cb
}

// Name reports the mailbox breakers under a single health entry.
func (f *GmailFactory) Name() string {
	return gmailName
}

// State folds the per-sender breakers into one: open only when every known
// sender is open, half-open while any sender is not closed.
func (f *GmailFactory) State() api.CircuitBreakerState {
	f.mu.Lock()
	defer f.mu.Unlock()

	open, notClosed := 0, 0
	for _, cb := range f.breakers {
		switch cb.State() {
		case api.Open:
			open++
			notClosed++
		case api.HalfOpen:
			notClosed++
		}
	}

	switch {
	case open > 0 && open == len(f.breakers):
		return api.Open
	case notClosed > 0:
		return api.HalfOpen
	default:
		return api.Closed
	}
}

// Mailbox builds a Gmail client bound to the sender's tokens.
func (f *GmailFactory) Mailbox(ctx context.Context, sender models.Sender) (ThreadedMailbox, error) {
	if !sender.HasMailbox() {
		return nil, ErrNoMailbox
	}

	opts := []option.ClientOption{}
	if f.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(f.cfg.Endpoint))
	}

	if f.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(f.httpClient))
	} else {
		tok := credentialToToken(sender.Credential)
		// The refresh goroutine must outlive the request that opened the mailbox.
		base := f.oauth.TokenSource(context.WithoutCancel(ctx), tok)
		opts = append(opts, option.WithTokenSource(&savingTokenSource{
			src:    base,
			last:   tok.AccessToken,
			userID: sender.UserID,
			saver:  f.saver,
			logger: f.logger,
		}))
	}

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailMailbox{
		svc:     svc,
		timeout: f.timeout,
		breaker: f.breakerFor(sender.UserID),
		logger:  f.logger.With(zap.Int64("userID", sender.UserID)),
	}, nil
}

func credentialToToken(c models.Credential) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  c.AccessToken.String,
		RefreshToken: c.RefreshToken.String,
		TokenType:    c.TokenType.String,
	}
	if c.ExpiresAt.Valid {
		tok.Expiry = c.ExpiresAt.Time
	}
	return tok
}

func tokenToCredential(t *oauth2.Token) models.Credential {
	c := models.Credential{
		AccessToken:  models.NullString(t.AccessToken),
		RefreshToken: models.NullString(t.RefreshToken),
		TokenType:    models.NullString(t.TokenType),
	}
	if !t.Expiry.IsZero() {
		c.ExpiresAt = models.NullTime(t.Expiry)
	}
	return c
}

// savingTokenSource hands refreshed tokens to a TokenSaver.
type savingTokenSource struct {
	src    oauth2.TokenSource
	userID int64
	saver  TokenSaver
	logger *zap.Logger

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last || s.saver == nil {
		return tok, nil
	}
	s.last = tok.AccessToken

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.saver(ctx, s.userID, tokenToCredential(tok)); err != nil {
		s.logger.Warn("Failed to persist refreshed token",
			zap.Int64("userID", s.userID),
			zap.Error(err))
	}
	return tok, nil
}

// GmailMailbox sends and reads through one user's Gmail account.
type GmailMailbox struct {
	svc     *gmail.Service
	timeout time.Duration
	breaker *CircuitBreaker
	logger  *zap.Logger
}

func (m *GmailMailbox) Name() string {
	return gmailName
}

// Send posts the raw RFC 5322 message. A non-empty ThreadID appends it to
// that conversation.
func (m *GmailMailbox) Send(ctx context.Context, env *mailer.Envelope) (Result, error) {
	raw, err := env.Raw(time.Now())
	if err != nil {
		return Result{}, fmt.Errorf("failed to render message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var sent *gmail.Message
	err = m.breaker.Execute(ctx, func() error {
		msg := &gmail.Message{Raw: raw, ThreadId: env.ThreadID}
		var sendErr error
		sent, sendErr = m.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
		return sendErr
	})
	if err != nil {
		return Result{}, fmt.Errorf("gmail send: %w", err)
	}

	return Result{
		ProviderMessageID: sent.Id,
		ConversationID:    sent.ThreadId,
		Transport:         gmailName,
	}, nil
}

// FetchConversation loads every message of a thread with full payloads.
func (m *GmailMailbox) FetchConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var thread *gmail.Thread
	err := m.breaker.Execute(ctx, func() error {
		var getErr error
		thread, getErr = m.svc.Users.Threads.Get("me", conversationID).Format("full").Context(ctx).Do()
		return getErr
	})
	if err != nil {
		return nil, fmt.Errorf("gmail thread %s: %w", conversationID, err)
	}

	conv := &Conversation{ID: thread.Id, Messages: make([]RemoteMessage, 0, len(thread.Messages))}
	for _, msg := range thread.Messages {
		conv.Messages = append(conv.Messages, RemoteMessage{
			ID:           msg.Id,
			ThreadID:     msg.ThreadId,
			InternalDate: time.UnixMilli(msg.InternalDate).UTC(),
			Payload:      convertPart(msg.Payload, m.logger),
		})
	}
	return conv, nil
}

func convertPart(p *gmail.MessagePart, logger *zap.Logger) *mailparse.Part {
	if p == nil {
		return nil
	}

	part := &mailparse.Part{
		MimeType: strings.ToLower(p.MimeType),
		Filename: p.Filename,
		Headers:  make(map[string]string, len(p.Headers)),
	}
	for _, h := range p.Headers {
		part.Headers[strings.ToLower(h.Name)] = h.Value
	}
	if p.Body != nil && p.Body.Data != "" {
		body, err := decodeBody(p.Body.Data)
		if err != nil {
			logger.Debug("Failed to decode message part", zap.String("mimeType", p.MimeType), zap.Error(err))
		}
		part.Body = body
	}
	for _, child := range p.Parts {
		part.Parts = append(part.Parts, convertPart(child, logger))
	}
	return part
}

// decodeBody accepts padded and unpadded base64url.
func decodeBody(data string) ([]byte, error) {
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
}
