package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/mailer"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/repository"
	"github.com/popeskul/outreach-engine/internal/transport"
)

// memStore is an in-memory repository.Repository that honors the lifecycle
// guards and the follow-up claim lease.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	messages   map[int64]*models.Message
	senders    map[int64]*models.Sender
	coaches    map[int64]*models.Coach
	activities []models.Activity
	tasks      []models.Task
}

func newMemStore() *memStore {
	return &memStore{
		messages: make(map[int64]*models.Message),
		senders:  make(map[int64]*models.Sender),
		coaches:  make(map[int64]*models.Coach),
	}
}

func (s *memStore) Ping() error { return nil }

func (s *memStore) Message() repository.MessageRepository   { return memMessages{s} }
func (s *memStore) User() repository.UserRepository         { return memUsers{s} }
func (s *memStore) Coach() repository.CoachRepository       { return memCoaches{s} }
func (s *memStore) Activity() repository.ActivityRepository { return memActivities{s} }
func (s *memStore) Task() repository.TaskRepository         { return memTasks{s} }

func (s *memStore) addSender(sender models.Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.senders[sender.UserID] = &sender
}

func (s *memStore) addCoach(coach models.Coach) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coaches[coach.ID] = &coach
}

func (s *memStore) insert(msg models.Message) *models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	msg.ID = s.nextID
	s.messages[msg.ID] = &msg
	cp := msg
	return &cp
}

func (s *memStore) get(id int64) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.messages[id]
}

func (s *memStore) byDirection(d models.Direction) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.Direction == d {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) activityKinds() []models.ActivityKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ActivityKind
	for _, a := range s.activities {
		out = append(out, a.Kind)
	}
	return out
}

func (s *memStore) taskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

type memMessages struct{ s *memStore }

func (r memMessages) Create(_ context.Context, msg *models.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if msg.ProviderMessageID.Valid {
		for _, m := range r.s.messages {
			if m.UserID == msg.UserID && m.ProviderMessageID == msg.ProviderMessageID {
				return fmt.Errorf("%w: provider message %s", apperr.ErrDuplicate, msg.ProviderMessageID.String)
			}
		}
	}

	r.s.nextID++
	msg.ID = r.s.nextID
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt
	cp := *msg
	r.s.messages[msg.ID] = &cp
	return nil
}

func (r memMessages) Update(_ context.Context, id int64, upd models.MessageUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return fmt.Errorf("%w: message %d", apperr.ErrNotFound, id)
	}
	if upd.Status != nil {
		if !models.CanTransition(m.Status, *upd.Status) {
			return fmt.Errorf("%w: %s -> %s", apperr.ErrIllegalTransition, m.Status, *upd.Status)
		}
		m.Status = *upd.Status
	}
	if upd.ProviderMessageID != nil {
		m.ProviderMessageID = models.NullString(*upd.ProviderMessageID)
	}
	if upd.ConversationID != nil {
		m.ConversationID = models.NullString(*upd.ConversationID)
	}
	if upd.Subject != nil {
		m.Subject = *upd.Subject
	}
	if upd.BodyHTML != nil {
		m.BodyHTML = *upd.BodyHTML
	}
	if upd.BodyText != nil {
		m.BodyText = models.NullString(*upd.BodyText)
	}
	if upd.HasResponded != nil {
		m.HasResponded = *upd.HasResponded
	}
	if upd.SentAt != nil {
		m.SentAt = models.NullTime(*upd.SentAt)
	}
	if upd.ScheduledFor != nil {
		m.ScheduledFor = models.NullTime(*upd.ScheduledFor)
	}
	return nil
}

func (r memMessages) UpdateStatus(ctx context.Context, id int64, to models.MessageStatus) error {
	return r.Update(ctx, id, models.MessageUpdate{Status: &to})
}

func (r memMessages) GetByID(_ context.Context, id int64) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return nil, fmt.Errorf("%w: message %d", apperr.ErrNotFound, id)
	}
	cp := *m
	return &cp, nil
}

func (r memMessages) FindByProviderMessageID(_ context.Context, userID int64, providerMessageID string) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.messages {
		if m.UserID == userID && m.ProviderMessageID.String == providerMessageID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memMessages) FindOutboundByHeaderMessageID(_ context.Context, userID int64, headerMessageID string) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.messages {
		if m.UserID == userID && m.Direction == models.DirectionOutbound && m.HeaderMessageID.String == headerMessageID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memMessages) FindOutboundByProviderMessageID(_ context.Context, providerMessageID string) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.messages {
		if m.Direction == models.DirectionOutbound && m.ProviderMessageID.String == providerMessageID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: provider message %s", apperr.ErrNotFound, providerMessageID)
}

func (r memMessages) filter(keep func(*models.Message) bool) []*models.Message {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Message
	for _, m := range r.s.messages {
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memMessages) FindByUserAndConversation(_ context.Context, userID int64, conversationID string) ([]*models.Message, error) {
	return r.filter(func(m *models.Message) bool {
		return m.UserID == userID && m.ConversationID.String == conversationID && conversationID != ""
	}), nil
}

func (r memMessages) ListByUser(_ context.Context, userID int64, f models.ListFilter) ([]*models.Message, error) {
	return r.filter(func(m *models.Message) bool {
		return m.UserID == userID &&
			(f.Status == nil || m.Status == *f.Status) &&
			(f.Direction == nil || m.Direction == *f.Direction)
	}), nil
}

func (r memMessages) ListConversations(_ context.Context, userID int64) ([]models.Conversation, error) {
	seen := make(map[string]bool)
	var out []models.Conversation
	for _, m := range r.filter(func(m *models.Message) bool {
		return m.UserID == userID && m.Direction == models.DirectionOutbound && m.ConversationID.Valid
	}) {
		if !seen[m.ConversationID.String] {
			seen[m.ConversationID.String] = true
			out = append(out, models.Conversation{ConversationID: m.ConversationID.String, CoachID: m.CoachID})
		}
	}
	return out, nil
}

func (r memMessages) LatestOutbound(_ context.Context, userID int64, coachID *int64) (*models.Message, error) {
	sent := r.filter(func(m *models.Message) bool {
		return m.UserID == userID && m.Direction == models.DirectionOutbound && m.SentAt.Valid &&
			(coachID == nil || m.CoachID == *coachID)
	})
	if len(sent) == 0 {
		return nil, fmt.Errorf("%w: no outbound message for user %d", apperr.ErrNotFound, userID)
	}
	sort.SliceStable(sent, func(i, j int) bool { return sent[i].SentAt.Time.Before(sent[j].SentAt.Time) })
	return sent[len(sent)-1], nil
}

func (r memMessages) markResponded(m *models.Message) {
	m.HasResponded = true
	if models.CanTransition(m.Status, models.MessageStatusReplied) {
		m.Status = models.MessageStatusReplied
	}
}

func (r memMessages) MarkResponded(_ context.Context, userID int64, conversationID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, m := range r.s.messages {
		if m.UserID == userID && m.ConversationID.String == conversationID &&
			m.Direction == models.DirectionOutbound && m.SentAt.Valid {
			r.markResponded(m)
			n++
		}
	}
	return n, nil
}

func (r memMessages) MarkRespondedByID(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return fmt.Errorf("%w: message %d", apperr.ErrNotFound, id)
	}
	r.markResponded(m)
	return nil
}

func (r memMessages) ClaimDueFollowUps(_ context.Context, claim models.FollowUpClaim) ([]*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int64, 0, len(r.s.messages))
	for id := range r.s.messages {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*models.Message
	for _, id := range ids {
		m := r.s.messages[id]
		if len(out) == claim.Limit {
			break
		}
		if m.Status != models.MessageStatusScheduled || !m.IsFollowUp || m.ScheduledFor.Time.After(claim.Now) {
			continue
		}
		if m.NextAttemptAt.Valid && m.NextAttemptAt.Time.After(claim.Now) {
			continue
		}
		if claim.MaxAttempts > 0 && m.FailureCount >= claim.MaxAttempts {
			continue
		}
		m.ClaimToken = models.NullString(claim.Token)
		m.NextAttemptAt = models.NullTime(claim.Until)
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r memMessages) ClaimDraft(_ context.Context, id int64, token string, now, until time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok || m.Status != models.MessageStatusDraft {
		return false, nil
	}
	if m.ClaimToken.Valid && m.NextAttemptAt.Valid && m.NextAttemptAt.Time.After(now) {
		return false, nil
	}
	m.ClaimToken = models.NullString(token)
	m.NextAttemptAt = models.NullTime(until)
	return true, nil
}

// holds reports whether token holds a live claim on m. Callers hold the lock.
func holds(m *models.Message, token string) bool {
	return m.ClaimToken.Valid && m.ClaimToken.String == token &&
		(m.Status == models.MessageStatusDraft || m.Status == models.MessageStatusScheduled)
}

func (r memMessages) RenewClaim(_ context.Context, id int64, token string, until time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok || !holds(m, token) {
		return false, nil
	}
	m.NextAttemptAt = models.NullTime(until)
	return true, nil
}

func (r memMessages) ReleaseClaim(_ context.Context, id int64, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.messages[id]; ok && holds(m, token) {
		m.ClaimToken.Valid = false
		m.NextAttemptAt.Valid = false
	}
	return nil
}

func (r memMessages) MarkSent(_ context.Context, id int64, token string, rec models.SentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return fmt.Errorf("%w: message %d", apperr.ErrNotFound, id)
	}
	if !holds(m, token) {
		return fmt.Errorf("%w: message %d is not claimed by this sender", apperr.ErrIllegalTransition, id)
	}
	m.Status = models.MessageStatusSent
	m.SentAt = models.NullTime(rec.SentAt)
	if rec.ProviderMessageID != "" {
		m.ProviderMessageID = models.NullString(rec.ProviderMessageID)
	}
	if rec.ConversationID != "" {
		m.ConversationID = models.NullString(rec.ConversationID)
	}
	if rec.HeaderMessageID != "" {
		m.HeaderMessageID = models.NullString(rec.HeaderMessageID)
	}
	m.ClaimToken.Valid = false
	m.NextAttemptAt.Valid = false
	return nil
}

func (r memMessages) RecordFollowUpFailure(_ context.Context, id int64, token, errMsg string, nextAttemptAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok || !holds(m, token) || m.Status != models.MessageStatusScheduled {
		return nil
	}
	m.FailureCount++
	m.LastError = models.NullString(errMsg)
	m.NextAttemptAt = models.NullTime(nextAttemptAt)
	m.ClaimToken.Valid = false
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) GetSender(_ context.Context, userID int64) (*models.Sender, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sender, ok := r.s.senders[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	cp := *sender
	return &cp, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*models.Sender, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sender := range r.s.senders {
		if strings.EqualFold(sender.Email, email) {
			cp := *sender
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
}

func (r memUsers) SaveCredential(_ context.Context, userID int64, cred models.Credential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sender, ok := r.s.senders[userID]
	if !ok {
		return fmt.Errorf("%w: user %d", apperr.ErrNotFound, userID)
	}
	sender.Credential = cred
	return nil
}

func (r memUsers) ListConnected(_ context.Context) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for id, sender := range r.s.senders {
		if sender.HasMailbox() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type memCoaches struct{ s *memStore }

func (r memCoaches) Get(_ context.Context, userID, coachID int64) (*models.Coach, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	coach, ok := r.s.coaches[coachID]
	if !ok || coach.UserID != userID {
		return nil, fmt.Errorf("%w: coach %d", apperr.ErrNotFound, coachID)
	}
	cp := *coach
	return &cp, nil
}

func (r memCoaches) FindByEmail(_ context.Context, userID int64, email string) (*models.Coach, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, coach := range r.s.coaches {
		if coach.UserID == userID && strings.EqualFold(coach.Email, email) {
			cp := *coach
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: coach %s", apperr.ErrNotFound, email)
}

func (r memCoaches) MarkContacted(_ context.Context, coachID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	coach, ok := r.s.coaches[coachID]
	if !ok || coach.Status != models.CoachStatusNew {
		return false, nil
	}
	coach.Status = models.CoachStatusContacted
	return true, nil
}

type memActivities struct{ s *memStore }

func (r memActivities) Create(_ context.Context, a *models.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activities = append(r.s.activities, *a)
	return nil
}

type memTasks struct{ s *memStore }

func (r memTasks) Create(_ context.Context, t *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks = append(r.s.tasks, *t)
	return nil
}

// recordingDeliverer captures every envelope and can be told to fail.
type recordingDeliverer struct {
	mu    sync.Mutex
	sent  []*mailer.Envelope
	fail  error
	count int
}

func (d *recordingDeliverer) Deliver(_ context.Context, _ models.Sender, env *mailer.Envelope) (transport.Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail != nil {
		return transport.Result{}, d.fail
	}
	d.count++
	d.sent = append(d.sent, env)
	return transport.Result{
		ProviderMessageID: fmt.Sprintf("provider-%d", d.count),
		ConversationID:    env.ThreadID,
		Transport:         "fake",
	}, nil
}

// stallingDeliverer calls onDeliver with the 1-based call number before
// recording each delivery.
type stallingDeliverer struct {
	recordingDeliverer
	calls     atomic.Int32
	onDeliver func(call int32)
}

func (d *stallingDeliverer) Deliver(ctx context.Context, sender models.Sender, env *mailer.Envelope) (transport.Result, error) {
	d.onDeliver(d.calls.Add(1))
	return d.recordingDeliverer.Deliver(ctx, sender, env)
}

func (d *recordingDeliverer) setFail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail = err
}

func (d *recordingDeliverer) envelopes() []*mailer.Envelope {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*mailer.Envelope(nil), d.sent...)
}
