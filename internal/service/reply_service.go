package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/mailparse"
	"github.com/popeskul/outreach-engine/internal/metrics"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/repository"
	"github.com/popeskul/outreach-engine/internal/transport"
)

const importLockPrefix = "outreach:import-lock:"

type replyService struct {
	cfg       config.ImporterConfig
	repo      repository.Repository
	mailboxes transport.MailboxFactory
	locker    Locker
	logger    *zap.Logger
	now       func() time.Time
}

func NewReplyService(
	cfg config.ImporterConfig,
	repo repository.Repository,
	mailboxes transport.MailboxFactory,
	locker Locker,
	logger *zap.Logger,
	opts ...Option,
) ReplyService {
	o := newOptions(opts)
	return &replyService{
		cfg:       cfg,
		repo:      repo,
		mailboxes: mailboxes,
		locker:    locker,
		logger:    logger,
		now:       o.now,
	}
}

// ImportNewReplies pulls every known conversation of the user from the
// mailbox and stores the messages that follow the opening one. Already
// stored messages are skipped, so repeated imports are harmless.
func (s *replyService) ImportNewReplies(ctx context.Context, userID int64) (*ImportResult, error) {
	release, ok, err := s.locker.Acquire(ctx, fmt.Sprintf("%s%d", importLockPrefix, userID), s.lockTTL())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrImportInProgress, userID)
	}
	defer release()

	sender, err := s.repo.User().GetSender(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sender.HasMailbox() || s.mailboxes == nil {
		return nil, fmt.Errorf("%w: user %d has no connected mailbox", apperr.ErrNoProviderConfigured, userID)
	}

	mailbox, err := s.mailboxes.Mailbox(ctx, *sender)
	if err != nil {
		return nil, err
	}

	conversations, err := s.repo.Message().ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, conv := range conversations {
		result.Conversations++

		remote, err := mailbox.FetchConversation(ctx, conv.ConversationID)
		if err != nil {
			result.Failed++
			s.logger.Warn("Failed to fetch conversation",
				zap.Int64("userID", userID),
				zap.String("conversationID", conv.ConversationID),
				zap.Error(err))
			continue
		}

		// The opening message of a thread is always our own.
		for _, rm := range remote.Messages[min(1, len(remote.Messages)):] {
			switch outcome, err := s.importRemote(ctx, sender, conv, rm); {
			case err != nil:
				result.Failed++
				s.logger.Warn("Failed to import message",
					zap.Int64("userID", userID),
					zap.String("providerMessageID", rm.ID),
					zap.Error(err))
			case outcome == InboundImported:
				result.Imported++
			default:
				result.Skipped++
			}
		}
	}

	s.logger.Info("Reply import finished",
		zap.Int64("userID", userID),
		zap.Int("conversations", result.Conversations),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (s *replyService) importRemote(ctx context.Context, sender *models.Sender, conv models.Conversation, rm transport.RemoteMessage) (outcome string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while importing message: %v", r)
		}
	}()

	existing, err := s.repo.Message().FindByProviderMessageID(ctx, sender.UserID, rm.ID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		metrics.RepliesSkipped.WithLabelValues("duplicate").Inc()
		return InboundDuplicate, nil
	}

	from := mailparse.NormalizeAddress(rm.Payload.Header("from"))
	if strings.EqualFold(from, sender.Email) {
		metrics.RepliesSkipped.WithLabelValues("own").Inc()
		return InboundIgnored, nil
	}

	text, html := mailparse.Bodies(rm.Payload)
	receivedAt := rm.InternalDate
	if receivedAt.IsZero() {
		receivedAt = s.now()
	}

	msg := &models.Message{
		UserID:            sender.UserID,
		CoachID:           conv.CoachID,
		ProviderMessageID: models.NullString(rm.ID),
		ConversationID:    models.NullString(firstNonEmpty(rm.ThreadID, conv.ConversationID)),
		HeaderMessageID:   models.NullString(headerID(rm.Payload.Header("message-id"))),
		Subject:           rm.Payload.Header("subject"),
		BodyHTML:          mailparse.StripQuotedHTML(html),
		BodyText:          models.NullString(mailparse.StripQuotedText(text)),
		Direction:         models.DirectionInbound,
		Status:            models.MessageStatusReceived,
		ReceivedAt:        models.NullTime(receivedAt),
	}

	return s.store(ctx, msg, "mailbox", func() error {
		_, err := s.repo.Message().MarkResponded(ctx, sender.UserID, conv.ConversationID)
		return err
	})
}

// ImportAll runs ImportNewReplies for every user with a connected mailbox.
// One user's failure does not stop the others.
func (s *replyService) ImportAll(ctx context.Context) (*ImportResult, error) {
	userIDs, err := s.repo.User().ListConnected(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list connected users: %w", err)
	}

	total := &ImportResult{}
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		res, err := s.ImportNewReplies(ctx, userID)
		switch {
		case errors.Is(err, apperr.ErrImportInProgress):
			s.logger.Debug("Skipping user with import in progress", zap.Int64("userID", userID))
		case err != nil:
			total.Failed++
			s.logger.Warn("Reply import failed", zap.Int64("userID", userID), zap.Error(err))
		default:
			total.Add(res)
		}
	}

	return total, nil
}

// webhookEnvelope is the SMTP envelope some inbound providers attach as JSON.
type webhookEnvelope struct {
	To   []string `json:"to"`
	From string   `json:"from"`
}

// IngestInbound stores a message pushed by the inbound webhook. The owning
// user is the recipient, the counterpart is found by correlation.
func (s *replyService) IngestInbound(ctx context.Context, in InboundEmail) (*InboundResult, error) {
	var root *mailparse.Part
	if in.Raw != "" {
		part, err := mailparse.ParseRaw(strings.NewReader(in.Raw))
		if err != nil {
			s.logger.Warn("Failed to parse raw inbound message", zap.Error(err))
		} else {
			root = part
		}
	}

	sender, err := s.resolveRecipient(ctx, in)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		metrics.RepliesSkipped.WithLabelValues("unmatched").Inc()
		s.logger.Info("Inbound message for unknown recipient", zap.String("to", in.To))
		return &InboundResult{Result: InboundIgnored}, nil
	}

	headerMessageID := firstNonEmpty(headerID(root.Header("message-id")), headerID(in.MessageID))
	dedupKey := firstNonEmpty(headerID(in.MessageID), headerMessageID)
	if dedupKey == "" {
		dedupKey = contentKey(in)
	}

	existing, err := s.repo.Message().FindByProviderMessageID(ctx, sender.UserID, dedupKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.RepliesSkipped.WithLabelValues("duplicate").Inc()
		return &InboundResult{Result: InboundDuplicate, MessageID: existing.ID}, nil
	}

	from := mailparse.NormalizeAddress(in.From)
	outbound, coachID, err := s.resolveCounterpart(ctx, sender.UserID, references(root), from)
	if errors.Is(err, apperr.ErrNotFound) {
		metrics.RepliesSkipped.WithLabelValues("unmatched").Inc()
		s.logger.Info("Inbound message matches no conversation",
			zap.Int64("userID", sender.UserID),
			zap.String("from", from))
		return &InboundResult{Result: InboundIgnored}, nil
	}
	if err != nil {
		return nil, err
	}

	text, html := in.Text, in.HTML
	if root != nil && text == "" && html == "" {
		text, html = mailparse.Bodies(root)
	}
	if html == "" {
		html = mailparse.TextToHTML(text)
	}

	msg := &models.Message{
		UserID:            sender.UserID,
		CoachID:           coachID,
		ProviderMessageID: models.NullString(dedupKey),
		HeaderMessageID:   models.NullString(headerMessageID),
		Subject:           firstNonEmpty(in.Subject, root.Header("subject")),
		BodyHTML:          mailparse.StripQuotedHTML(html),
		BodyText:          models.NullString(mailparse.StripQuotedText(text)),
		Direction:         models.DirectionInbound,
		Status:            models.MessageStatusReceived,
		ReceivedAt:        models.NullTime(s.now()),
	}
	if outbound != nil {
		msg.ConversationID = outbound.ConversationID
	}

	outcome, err := s.store(ctx, msg, "webhook", func() error {
		switch {
		case outbound == nil:
			return nil
		case outbound.ConversationID.Valid:
			_, err := s.repo.Message().MarkResponded(ctx, sender.UserID, outbound.ConversationID.String)
			return err
		default:
			return s.repo.Message().MarkRespondedByID(ctx, outbound.ID)
		}
	})
	if err != nil {
		return nil, err
	}

	return &InboundResult{Result: outcome, MessageID: msg.ID}, nil
}

// store persists an inbound message and flags the answered outbound side.
// A duplicate insert means a concurrent import got there first.
func (s *replyService) store(ctx context.Context, msg *models.Message, source string, markResponded func() error) (string, error) {
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			metrics.RepliesSkipped.WithLabelValues("duplicate").Inc()
			return InboundDuplicate, nil
		}
		return "", err
	}

	if err := markResponded(); err != nil {
		s.logger.Warn("Failed to mark conversation answered",
			zap.Int64("messageID", msg.ID),
			zap.Error(err))
	}

	activity := &models.Activity{
		UserID:    msg.UserID,
		CoachID:   msg.CoachID,
		MessageID: models.NullInt64(msg.ID),
		Kind:      models.ActivityReplyReceived,
		Detail:    msg.Subject,
	}
	if err := s.repo.Activity().Create(ctx, activity); err != nil {
		s.logger.Warn("Failed to record activity", zap.Int64("messageID", msg.ID), zap.Error(err))
	}

	metrics.RepliesImported.WithLabelValues(source).Inc()
	return InboundImported, nil
}

// resolveRecipient finds the user a webhook message was addressed to. The
// SMTP envelope wins over the To header. It returns nil when no recipient is
// a known user.
func (s *replyService) resolveRecipient(ctx context.Context, in InboundEmail) (*models.Sender, error) {
	var candidates []string
	if in.Envelope != "" {
		var env webhookEnvelope
		if err := json.Unmarshal([]byte(in.Envelope), &env); err != nil {
			s.logger.Debug("Ignoring malformed inbound envelope", zap.Error(err))
		} else {
			candidates = append(candidates, env.To...)
		}
	}
	candidates = append(candidates, strings.Split(in.To, ",")...)

	seen := make(map[string]bool)
	for _, c := range candidates {
		addr := mailparse.NormalizeAddress(c)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true

		sender, err := s.repo.User().FindByEmail(ctx, addr)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sender, nil
	}

	return nil, nil
}

// resolveCounterpart correlates an inbound message with the outbound message
// it answers. It tries the referenced message ids against the Message-ID
// stamped on each send and then against provider ids, then the sender
// address, then falls back to the user's most recent outbound message.
func (s *replyService) resolveCounterpart(ctx context.Context, userID int64, refs []string, from string) (*models.Message, int64, error) {
	for _, ref := range refs {
		msg, err := s.repo.Message().FindOutboundByHeaderMessageID(ctx, userID, ref)
		if err != nil {
			return nil, 0, err
		}
		if msg != nil {
			return msg, msg.CoachID, nil
		}

		msg, err = s.repo.Message().FindByProviderMessageID(ctx, userID, ref)
		if err != nil {
			return nil, 0, err
		}
		if msg != nil && msg.Direction == models.DirectionOutbound {
			return msg, msg.CoachID, nil
		}
	}

	if from != "" {
		coach, err := s.repo.Coach().FindByEmail(ctx, userID, from)
		switch {
		case err == nil:
			outbound, err := s.repo.Message().LatestOutbound(ctx, userID, &coach.ID)
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, coach.ID, nil
			}
			if err != nil {
				return nil, 0, err
			}
			return outbound, coach.ID, nil
		case !errors.Is(err, apperr.ErrNotFound):
			return nil, 0, err
		}
	}

	outbound, err := s.repo.Message().LatestOutbound(ctx, userID, nil)
	if err != nil {
		return nil, 0, err
	}
	s.logger.Warn("Correlated inbound message by most recent outbound",
		zap.Int64("userID", userID),
		zap.String("from", from),
		zap.Int64("messageID", outbound.ID))
	return outbound, outbound.CoachID, nil
}

// references lists the message ids an inbound message answers, nearest
// first.
func references(root *mailparse.Part) []string {
	var refs []string
	if v := root.Header("in-reply-to"); v != "" {
		refs = append(refs, strings.Fields(v)...)
	}
	if v := root.Header("references"); v != "" {
		fields := strings.Fields(v)
		for i := len(fields) - 1; i >= 0; i-- {
			refs = append(refs, fields[i])
		}
	}
	for i, r := range refs {
		refs[i] = headerID(r)
	}
	return refs
}

// headerID strips the angle brackets of a Message-ID.
func headerID(v string) string {
	return strings.Trim(strings.TrimSpace(v), "<>")
}

// contentKey derives a stable id for webhook payloads without a Message-Id.
func contentKey(in InboundEmail) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{in.From, in.To, in.Subject, in.Text}, "\x00")))
	return "webhook-" + hex.EncodeToString(sum[:16])
}

func (s *replyService) lockTTL() time.Duration {
	if s.cfg.LockTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.cfg.LockTTLSeconds) * time.Second
}
