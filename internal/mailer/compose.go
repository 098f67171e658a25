// Package mailer builds transport-ready envelopes from logical messages.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/mailparse"
)

// Draft is a logical message before it is rendered for a provider.
type Draft struct {
	From     string
	FromName string
	To       string
	Subject  string
	HTML     string
	Text     string

	// ConversationID is set when replying inside an existing thread.
	ConversationID string
	// InReplyTo is the RFC 5322 Message-ID of the message being answered,
	// when known.
	InReplyTo string
}

// Envelope is a message ready to be handed to a transport.
type Envelope struct {
	From     string
	FromName string
	To       string
	Subject  string
	HTML     string
	Text     string

	// MessageID is the RFC 5322 Message-ID without angle brackets. Replies
	// quote it back, which is how they are matched to this message.
	MessageID string

	// ThreadID asks thread-aware providers to append to a conversation.
	ThreadID string
	Headers  map[string]string
}

// IsReply reports whether the envelope targets an existing conversation.
func (e *Envelope) IsReply() bool {
	return e.ThreadID != ""
}

// Compose validates a draft and turns it into an envelope with a fresh
// Message-ID.
func Compose(d Draft) (*Envelope, error) {
	if strings.TrimSpace(d.To) == "" {
		return nil, fmt.Errorf("%w: recipient is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(d.HTML) == "" && strings.TrimSpace(d.Text) == "" {
		return nil, fmt.Errorf("%w: body is required", apperr.ErrValidation)
	}

	env := &Envelope{
		From:     d.From,
		FromName: d.FromName,
		To:       d.To,
		Subject:  d.Subject,
		HTML:     d.HTML,
		Text:     d.Text,

		MessageID: newMessageID(d.From),
		Headers:   make(map[string]string),
	}

	if d.ConversationID != "" {
		env.ThreadID = d.ConversationID
		// A conversation id is a provider handle, not a Message-ID, so the
		// threading headers are only set when the answered message is known.
		if d.InReplyTo != "" {
			ref := bracket(d.InReplyTo)
			env.Headers["In-Reply-To"] = ref
			env.Headers["References"] = ref
		}
	}

	return env, nil
}

// newMessageID builds an id in the sender's domain.
func newMessageID(from string) string {
	domain := "outreach.local"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = strings.ToLower(strings.TrimSpace(from[i+1:]))
	}
	return uuid.NewString() + "@" + domain
}

func bracket(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "<") && strings.HasSuffix(id, ">") {
		return id
	}
	return "<" + strings.Trim(id, "<>") + ">"
}

// PlainText returns the text body, deriving it from HTML when absent.
func (e *Envelope) PlainText() string {
	if e.Text != "" {
		return e.Text
	}
	return mailparse.HTMLToText(e.HTML)
}

// RFC822 renders the envelope as a multipart/alternative message.
func (e *Envelope) RFC822(now time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{{Name: e.FromName, Address: e.From}})
	h.SetAddressList("To", []*mail.Address{{Address: e.To}})
	h.SetSubject(e.Subject)
	if e.MessageID != "" {
		h.SetMessageID(e.MessageID)
	}
	for k, v := range e.Headers {
		h.Set(k, v)
	}

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("failed to create message writer: %w", err)
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("failed to create inline writer: %w", err)
	}

	if err := writeInline(tw, "text/plain", e.PlainText()); err != nil {
		return nil, err
	}
	if e.HTML != "" {
		if err := writeInline(tw, "text/html", e.HTML); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close inline writer: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close message writer: %w", err)
	}

	return buf.Bytes(), nil
}

func writeInline(tw *mail.InlineWriter, contentType, body string) error {
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	w, err := tw.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", contentType, err)
	}
	if _, err := w.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to write %s part: %w", contentType, err)
	}
	return w.Close()
}

// Raw renders the envelope and encodes it with base64url, the form mailbox
// APIs expect.
func (e *Envelope) Raw(now time.Time) (string, error) {
	b, err := e.RFC822(now)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
