package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/mailparse"
	"github.com/popeskul/outreach-engine/internal/metrics"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/repository"
)

const minClaimLease = 30 * time.Second

type followUpService struct {
	cfg       config.SchedulerConfig
	repo      repository.Repository
	deliverer Deliverer
	logger    *zap.Logger
	now       func() time.Time
}

func NewFollowUpService(
	cfg config.SchedulerConfig,
	repo repository.Repository,
	deliverer Deliverer,
	logger *zap.Logger,
	opts ...Option,
) FollowUpService {
	o := newOptions(opts)
	return &followUpService{
		cfg:       cfg,
		repo:      repo,
		deliverer: deliverer,
		logger:    logger,
		now:       o.now,
	}
}

// ScheduleFollowUp stores a follow-up due DelayDays after now together with
// a reminder task for the user.
func (s *followUpService) ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (*models.Message, error) {
	if req.DelayDays < 1 {
		return nil, fmt.Errorf("%w: follow-up delay must be at least one day", apperr.ErrValidation)
	}
	if strings.TrimSpace(req.BodyHTML) == "" && strings.TrimSpace(req.BodyText) == "" {
		return nil, fmt.Errorf("%w: body is required", apperr.ErrValidation)
	}

	parent, err := s.repo.Message().GetByID(ctx, req.ParentMessageID)
	if err != nil {
		return nil, err
	}
	if parent.UserID != req.UserID {
		return nil, fmt.Errorf("%w: message %d", apperr.ErrNotFound, req.ParentMessageID)
	}

	coachID := req.CoachID
	if coachID == 0 {
		coachID = parent.CoachID
	}

	dueAt := s.now().AddDate(0, 0, req.DelayDays)
	msg := &models.Message{
		UserID:          req.UserID,
		CoachID:         coachID,
		Subject:         req.Subject,
		BodyHTML:        firstNonEmpty(req.BodyHTML, mailparse.TextToHTML(req.BodyText)),
		BodyText:        models.NullString(req.BodyText),
		Direction:       models.DirectionOutbound,
		Status:          models.MessageStatusScheduled,
		IsFollowUp:      true,
		ParentMessageID: models.NullInt64(parent.ID),
		ScheduledFor:    models.NullTime(dueAt),
	}
	if err := s.repo.Message().Create(ctx, msg); err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:    req.UserID,
		CoachID:   coachID,
		MessageID: models.NullInt64(msg.ID),
		Title:     "Follow up: " + req.Subject,
		DueAt:     dueAt,
	}
	if err := s.repo.Task().Create(ctx, task); err != nil {
		s.logger.Warn("Failed to create follow-up task", zap.Int64("messageID", msg.ID), zap.Error(err))
	}

	activity := &models.Activity{
		UserID:    req.UserID,
		CoachID:   coachID,
		MessageID: models.NullInt64(msg.ID),
		Kind:      models.ActivityFollowUpSchedule,
		Detail:    fmt.Sprintf("due %s", dueAt.Format(time.RFC3339)),
	}
	if err := s.repo.Activity().Create(ctx, activity); err != nil {
		s.logger.Warn("Failed to record activity", zap.Int64("messageID", msg.ID), zap.Error(err))
	}

	return msg, nil
}

// ProcessDue claims due follow-ups in batches and sends them. Each batch is
// leased to a fresh token and every item renews the lease right before its
// send, so a follow-up whose lease ran out and was claimed by another sweep
// is skipped here. A send never outlives its lease. Failed rows stay
// scheduled and become due again after a backoff.
func (s *followUpService) ProcessDue(ctx context.Context, now time.Time) (*SweepResult, error) {
	result := &SweepResult{}
	lease := s.lease()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		token := uuid.NewString()
		claimed, err := s.repo.Message().ClaimDueFollowUps(ctx, models.FollowUpClaim{
			Token:       token,
			Now:         now,
			Until:       now.Add(lease),
			Limit:       s.batchSize(),
			MaxAttempts: s.cfg.MaxFollowUpAttempts,
		})
		if err != nil {
			metrics.ClaimTotal.WithLabelValues("error").Inc()
			s.logger.Error("Failed to claim due follow-ups", zap.Error(err))
			return result, fmt.Errorf("failed to claim due follow-ups: %w", err)
		}
		if len(claimed) == 0 {
			metrics.ClaimTotal.WithLabelValues("empty").Inc()
			break
		}

		metrics.ClaimTotal.WithLabelValues("ok").Inc()
		metrics.ClaimBatchSize.Observe(float64(len(claimed)))
		result.Claimed += len(claimed)

		for _, msg := range claimed {
			switch err := s.processOne(ctx, msg, token, now); {
			case errors.Is(err, errClaimLost):
				result.Skipped++
			case err != nil:
				result.Failed++
			default:
				result.Sent++
			}
		}

		if len(claimed) < s.batchSize() {
			break
		}
	}

	if result.Claimed > 0 {
		s.logger.Info("Follow-up sweep finished",
			zap.Int("claimed", result.Claimed),
			zap.Int("sent", result.Sent),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed))
	}

	return result, nil
}

var errClaimLost = errors.New("follow-up claimed by another sweep")

func (s *followUpService) processOne(ctx context.Context, msg *models.Message, token string, now time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while sending follow-up: %v", r)
		}
		if err != nil && !errors.Is(err, errClaimLost) {
			s.recordFailure(ctx, msg, token, err, now)
		}
	}()

	lease := s.lease()
	held, err := s.repo.Message().RenewClaim(ctx, msg.ID, token, s.now().Add(lease))
	if err != nil {
		return err
	}
	if !held {
		metrics.ClaimTotal.WithLabelValues("lost").Inc()
		s.logger.Info("Skipping follow-up claimed by another sweep", zap.Int64("messageID", msg.ID))
		return errClaimLost
	}

	// Half the lease is left for recording the outcome.
	return s.send(ctx, msg, token, now, lease/2)
}

func (s *followUpService) send(ctx context.Context, msg *models.Message, token string, now time.Time, deadline time.Duration) error {
	sender, err := s.repo.User().GetSender(ctx, msg.UserID)
	if err != nil {
		return err
	}
	coach, err := s.repo.Coach().Get(ctx, msg.UserID, msg.CoachID)
	if err != nil {
		return err
	}

	conversationID := s.parentConversation(ctx, msg)

	env, err := mailer.Compose(mailer.Draft{
		From:           sender.Email,
		FromName:       sender.Name,
		To:             coach.Email,
		Subject:        msg.Subject,
		HTML:           msg.BodyHTML,
		Text:           msg.BodyText.String,
		ConversationID: conversationID,
	})
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, deadline)
	res, err := s.deliverer.Deliver(sendCtx, *sender, env)
	cancel()
	if err != nil {
		return err
	}

	conversationID = firstNonEmpty(res.ConversationID, conversationID)
	rec := models.SentRecord{
		SentAt:            now,
		ProviderMessageID: res.ProviderMessageID,
		ConversationID:    conversationID,
		HeaderMessageID:   env.MessageID,
	}
	if err := s.repo.Message().MarkSent(ctx, msg.ID, token, rec); err != nil {
		metrics.UnrecordedSends.Inc()
		s.logger.Error("Follow-up sent but not recorded",
			zap.Int64("messageID", msg.ID),
			zap.String("providerMessageID", res.ProviderMessageID),
			zap.Error(err))
		return fmt.Errorf("%w: %w", apperr.ErrUnrecordedSend, err)
	}

	msg.Status = models.MessageStatusSent
	msg.ProviderMessageID = models.NullString(res.ProviderMessageID)
	msg.ConversationID = models.NullString(conversationID)
	msg.HeaderMessageID = models.NullString(env.MessageID)
	msg.SentAt = models.NullTime(now)
	msg.ClaimToken.Valid = false

	metrics.MessagesSent.WithLabelValues("follow_up").Inc()
	recordSideEffects(ctx, s.repo, s.logger, msg, models.ActivityFollowUpSent)
	return nil
}

// parentConversation returns the thread a follow-up continues, or "" to
// start a new one.
func (s *followUpService) parentConversation(ctx context.Context, msg *models.Message) string {
	if !msg.ParentMessageID.Valid {
		return ""
	}
	parent, err := s.repo.Message().GetByID(ctx, msg.ParentMessageID.Int64)
	if err != nil {
		s.logger.Warn("Failed to load follow-up parent",
			zap.Int64("messageID", msg.ID),
			zap.Int64("parentID", msg.ParentMessageID.Int64),
			zap.Error(err))
		return ""
	}
	return parent.ConversationID.String
}

func (s *followUpService) recordFailure(ctx context.Context, msg *models.Message, token string, cause error, now time.Time) {
	metrics.FollowUpFailures.Inc()

	attempts := msg.FailureCount + 1
	next := now.Add(s.backoff(attempts))
	s.logger.Warn("Failed to send follow-up",
		zap.Int64("messageID", msg.ID),
		zap.Int("attempt", attempts),
		zap.Time("nextAttemptAt", next),
		zap.Error(cause))

	if s.cfg.MaxFollowUpAttempts > 0 && attempts >= s.cfg.MaxFollowUpAttempts {
		s.logger.Error("Follow-up reached the attempt limit", zap.Int64("messageID", msg.ID), zap.Int("attempts", attempts))
	}

	if err := s.repo.Message().RecordFollowUpFailure(ctx, msg.ID, token, cause.Error(), next); err != nil {
		s.logger.Error("Failed to record follow-up failure", zap.Int64("messageID", msg.ID), zap.Error(err))
	}
}

// backoff doubles the base delay per attempt up to the configured maximum.
func (s *followUpService) backoff(attempts int) time.Duration {
	base := time.Duration(s.cfg.RetryBackoffSeconds) * time.Second
	if base <= 0 {
		base = time.Minute
	}
	limit := time.Duration(s.cfg.RetryBackoffMaxMinute) * time.Minute
	if limit < base {
		limit = base
	}

	d := base
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= limit {
			return limit
		}
	}
	return d
}

// lease is how long a claim keeps other sweeps away. It never drops below
// minClaimLease.
func (s *followUpService) lease() time.Duration {
	return max(time.Duration(s.cfg.ClaimLeaseSeconds)*time.Second, minClaimLease)
}

func (s *followUpService) batchSize() int {
	if s.cfg.BatchSize <= 0 {
		return 50
	}
	return s.cfg.BatchSize
}
