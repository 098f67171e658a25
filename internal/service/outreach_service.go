package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/metrics"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/repository"
	"github.com/popeskul/outreach-engine/internal/transport"
)

const followUpSubjectPrefix = "Follow-up: "

// draftLease bounds how long a draft send keeps concurrent sends away. The
// delivery itself gets half of it.
const draftLease = 2 * time.Minute

type outreachService struct {
	repo      repository.Repository
	deliverer Deliverer
	followUps FollowUpService
	logger    *zap.Logger
	now       func() time.Time
}

func NewOutreachService(
	repo repository.Repository,
	deliverer Deliverer,
	followUps FollowUpService,
	logger *zap.Logger,
	opts ...Option,
) OutreachService {
	o := newOptions(opts)
	return &outreachService{
		repo:      repo,
		deliverer: deliverer,
		followUps: followUps,
		logger:    logger,
		now:       o.now,
	}
}

// SendNow delivers a new message to a coach and records it as sent. Nothing
// is stored when delivery fails.
func (s *outreachService) SendNow(ctx context.Context, req SendRequest) (*models.Message, error) {
	if req.FollowUpDays < 0 {
		return nil, fmt.Errorf("%w: follow-up days must not be negative", apperr.ErrValidation)
	}

	sender, coach, err := s.parties(ctx, req.UserID, req.CoachID)
	if err != nil {
		return nil, err
	}

	env, err := mailer.Compose(mailer.Draft{
		From:     sender.Email,
		FromName: sender.Name,
		To:       coach.Email,
		Subject:  req.Subject,
		HTML:     req.BodyHTML,
		Text:     req.BodyText,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.deliverer.Deliver(ctx, *sender, env)
	if err != nil {
		return nil, err
	}

	msg := sentMessage(req.UserID, coach.ID, env, res, res.ConversationID, s.now())
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, s.unrecorded(res, err)
	}

	s.afterSend(ctx, msg, models.ActivityMessageSent, "new")

	if req.FollowUpDays > 0 {
		_, err := s.followUps.ScheduleFollowUp(ctx, FollowUpRequest{
			UserID:          req.UserID,
			ParentMessageID: msg.ID,
			CoachID:         coach.ID,
			Subject:         followUpSubjectPrefix + req.Subject,
			BodyHTML:        req.BodyHTML,
			BodyText:        req.BodyText,
			DelayDays:       req.FollowUpDays,
		})
		if err != nil {
			s.logger.Error("Failed to schedule follow-up",
				zap.Int64("messageID", msg.ID),
				zap.Error(err))
		}
	}

	return msg, nil
}

// ReplyInThread answers inside an existing conversation with the coach who
// owns it.
func (s *outreachService) ReplyInThread(ctx context.Context, req ReplyRequest) (*models.Message, error) {
	if strings.TrimSpace(req.ConversationID) == "" {
		return nil, fmt.Errorf("%w: conversation id is required", apperr.ErrValidation)
	}

	thread, err := s.repo.Message().FindByUserAndConversation(ctx, req.UserID, req.ConversationID)
	if err != nil {
		return nil, err
	}
	if len(thread) == 0 {
		return nil, fmt.Errorf("%w: conversation %s", apperr.ErrNotFound, req.ConversationID)
	}

	sender, coach, err := s.parties(ctx, req.UserID, thread[0].CoachID)
	if err != nil {
		return nil, err
	}

	subject := req.Subject
	if subject == "" {
		subject = replySubject(thread[0].Subject)
	}

	env, err := mailer.Compose(mailer.Draft{
		From:           sender.Email,
		FromName:       sender.Name,
		To:             coach.Email,
		Subject:        subject,
		HTML:           req.BodyHTML,
		Text:           req.BodyText,
		ConversationID: req.ConversationID,
		InReplyTo:      latestInboundRef(thread),
	})
	if err != nil {
		return nil, err
	}

	res, err := s.deliverer.Deliver(ctx, *sender, env)
	if err != nil {
		return nil, err
	}

	msg := sentMessage(req.UserID, coach.ID, env, res, firstNonEmpty(res.ConversationID, req.ConversationID), s.now())
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, s.unrecorded(res, err)
	}

	s.afterSend(ctx, msg, models.ActivityReplySent, "reply")
	return msg, nil
}

func (s *outreachService) SaveDraft(ctx context.Context, req DraftRequest) (*models.Message, error) {
	if _, err := s.repo.Coach().Get(ctx, req.UserID, req.CoachID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		UserID:    req.UserID,
		CoachID:   req.CoachID,
		Subject:   req.Subject,
		BodyHTML:  req.BodyHTML,
		BodyText:  models.NullString(req.BodyText),
		Direction: models.DirectionOutbound,
		Status:    models.MessageStatusDraft,
	}
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// SendDraft delivers a stored draft and moves it to sent. The draft is
// claimed first, so of two concurrent calls only one delivers and the other
// gets ErrIllegalTransition.
func (s *outreachService) SendDraft(ctx context.Context, userID, messageID int64) (*models.Message, error) {
	msg, err := s.repo.Message().GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.UserID != userID {
		return nil, fmt.Errorf("%w: message %d", apperr.ErrNotFound, messageID)
	}
	if msg.Status != models.MessageStatusDraft {
		return nil, fmt.Errorf("%w: message %d is %s", apperr.ErrIllegalTransition, messageID, msg.Status)
	}

	sender, coach, err := s.parties(ctx, userID, msg.CoachID)
	if err != nil {
		return nil, err
	}

	env, err := mailer.Compose(mailer.Draft{
		From:     sender.Email,
		FromName: sender.Name,
		To:       coach.Email,
		Subject:  msg.Subject,
		HTML:     msg.BodyHTML,
		Text:     msg.BodyText.String,
	})
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	now := s.now()
	claimed, err := s.repo.Message().ClaimDraft(ctx, msg.ID, token, now, now.Add(draftLease))
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, fmt.Errorf("%w: message %d is already being sent", apperr.ErrIllegalTransition, messageID)
	}

	sendCtx, cancel := context.WithTimeout(ctx, draftLease/2)
	res, err := s.deliverer.Deliver(sendCtx, *sender, env)
	cancel()
	if err != nil {
		if relErr := s.repo.Message().ReleaseClaim(ctx, msg.ID, token); relErr != nil {
			s.logger.Warn("Failed to release draft claim", zap.Int64("messageID", msg.ID), zap.Error(relErr))
		}
		return nil, err
	}

	sentAt := s.now()
	rec := models.SentRecord{
		SentAt:            sentAt,
		ProviderMessageID: res.ProviderMessageID,
		ConversationID:    res.ConversationID,
		HeaderMessageID:   env.MessageID,
	}
	if err := s.repo.Message().MarkSent(ctx, msg.ID, token, rec); err != nil {
		return nil, s.unrecorded(res, err)
	}

	msg.Status = models.MessageStatusSent
	msg.ProviderMessageID = models.NullString(res.ProviderMessageID)
	msg.ConversationID = models.NullString(res.ConversationID)
	msg.HeaderMessageID = models.NullString(env.MessageID)
	msg.SentAt = models.NullTime(sentAt)

	s.afterSend(ctx, msg, models.ActivityMessageSent, "draft")
	return msg, nil
}

func (s *outreachService) ListMessages(ctx context.Context, userID int64, filter models.ListFilter) ([]*models.Message, error) {
	return s.repo.Message().ListByUser(ctx, userID, filter)
}

var deliveryEvents = map[string]models.MessageStatus{
	"delivered":       models.MessageStatusDelivered,
	"email.delivered": models.MessageStatusDelivered,
	"opened":          models.MessageStatusOpened,
	"email.opened":    models.MessageStatusOpened,
	"bounced":         models.MessageStatusBounced,
	"email.bounced":   models.MessageStatusBounced,
}

// ApplyDeliveryEvent advances an outbound message on a provider callback.
// Unknown events, unknown messages and stale transitions are ignored.
func (s *outreachService) ApplyDeliveryEvent(ctx context.Context, ev DeliveryEvent) (bool, error) {
	to, ok := deliveryEvents[strings.ToLower(ev.Event)]
	if !ok {
		s.logger.Debug("Ignoring delivery event", zap.String("event", ev.Event))
		return false, nil
	}
	if ev.ProviderMessageID == "" {
		return false, fmt.Errorf("%w: provider message id is required", apperr.ErrValidation)
	}

	msg, err := s.repo.Message().FindOutboundByProviderMessageID(ctx, ev.ProviderMessageID)
	if errors.Is(err, apperr.ErrNotFound) {
		s.logger.Debug("Delivery event for unknown message", zap.String("providerMessageID", ev.ProviderMessageID))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = s.repo.Message().UpdateStatus(ctx, msg.ID, to)
	if errors.Is(err, apperr.ErrIllegalTransition) {
		s.logger.Debug("Stale delivery event",
			zap.Int64("messageID", msg.ID),
			zap.String("event", ev.Event),
			zap.String("status", string(msg.Status)))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *outreachService) parties(ctx context.Context, userID, coachID int64) (*models.Sender, *models.Coach, error) {
	sender, err := s.repo.User().GetSender(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	coach, err := s.repo.Coach().Get(ctx, userID, coachID)
	if err != nil {
		return nil, nil, err
	}
	return sender, coach, nil
}

// unrecorded reports a message that left through a transport but could not
// be stored.
func (s *outreachService) unrecorded(res transport.Result, err error) error {
	metrics.UnrecordedSends.Inc()
	s.logger.Error("Message sent but not recorded",
		zap.String("transport", res.Transport),
		zap.String("providerMessageID", res.ProviderMessageID),
		zap.Error(err))
	return fmt.Errorf("%w: %w", apperr.ErrUnrecordedSend, err)
}

func (s *outreachService) afterSend(ctx context.Context, msg *models.Message, kind models.ActivityKind, metricKind string) {
	metrics.MessagesSent.WithLabelValues(metricKind).Inc()
	recordSideEffects(ctx, s.repo, s.logger, msg, kind)
}

// recordSideEffects writes the activity entry and advances the coach. Both
// are best effort.
func recordSideEffects(ctx context.Context, repo repository.Repository, logger *zap.Logger, msg *models.Message, kind models.ActivityKind) {
	activity := &models.Activity{
		UserID:    msg.UserID,
		CoachID:   msg.CoachID,
		MessageID: models.NullInt64(msg.ID),
		Kind:      kind,
		Detail:    msg.Subject,
	}
	if err := repo.Activity().Create(ctx, activity); err != nil {
		logger.Warn("Failed to record activity", zap.Int64("messageID", msg.ID), zap.Error(err))
	}

	if _, err := repo.Coach().MarkContacted(ctx, msg.CoachID); err != nil {
		logger.Warn("Failed to mark coach contacted", zap.Int64("coachID", msg.CoachID), zap.Error(err))
	}
}

func sentMessage(userID, coachID int64, env *mailer.Envelope, res transport.Result, conversationID string, sentAt time.Time) *models.Message {
	return &models.Message{
		UserID:            userID,
		CoachID:           coachID,
		ProviderMessageID: models.NullString(res.ProviderMessageID),
		ConversationID:    models.NullString(conversationID),
		HeaderMessageID:   models.NullString(env.MessageID),
		Subject:           env.Subject,
		BodyHTML:          env.HTML,
		BodyText:          models.NullString(env.Text),
		Direction:         models.DirectionOutbound,
		Status:            models.MessageStatusSent,
		SentAt:            models.NullTime(sentAt),
	}
}

// latestInboundRef returns the Message-ID header of the newest inbound
// message of a thread, which is what a reply answers.
func latestInboundRef(thread []*models.Message) string {
	for i := len(thread) - 1; i >= 0; i-- {
		if thread[i].Direction == models.DirectionInbound && thread[i].HeaderMessageID.Valid {
			return thread[i].HeaderMessageID.String
		}
	}
	return ""
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
