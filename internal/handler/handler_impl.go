// Package handler provides HTTP request handlers for the application.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/api"
	"github.com/popeskul/outreach-engine/internal/apperr"
	"github.com/popeskul/outreach-engine/internal/middleware"
	"github.com/popeskul/outreach-engine/internal/models"
	"github.com/popeskul/outreach-engine/internal/scheduler"
	"github.com/popeskul/outreach-engine/internal/service"
)

const (
	errorCodeSchedulerAlreadyRunning = "SCHEDULER_ALREADY_RUNNING"
	errorCodeSchedulerNotRunning     = "SCHEDULER_NOT_RUNNING"
	errorCodeInvalidBody             = "INVALID_BODY"
)

const (
	errorMessageSchedulerAlreadyRunning = "Scheduler is already running"
	errorMessageSchedulerNotRunning     = "Scheduler is not running"
	errorMessageFailedToStartScheduler  = "Failed to start scheduler"
	errorMessageFailedToStopScheduler   = "Failed to stop scheduler"
	errorMessageInvalidBody             = "Request body is not valid JSON"
)

const (
	schedulerMessageStarted = "Scheduler started successfully"
	schedulerMessageStopped = "Scheduler stopped successfully"
)

// maxInboundSize bounds multipart webhook payloads held in memory.
const maxInboundSize = 10 << 20

var statusByCode = map[string]int{
	apperr.CodeValidation:           http.StatusBadRequest,
	apperr.CodeNotFound:             http.StatusNotFound,
	apperr.CodeIllegalTransition:    http.StatusConflict,
	apperr.CodeDuplicate:            http.StatusConflict,
	apperr.CodeImportInProgress:     http.StatusConflict,
	apperr.CodeNoProviderConfigured: http.StatusUnprocessableEntity,
	apperr.CodeTransportRejected:    http.StatusBadGateway,
	apperr.CodeUnrecordedSend:       http.StatusInternalServerError,
	apperr.CodeInternal:             http.StatusInternalServerError,
}

type Handler struct {
	service *service.Service
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandler creates a new handler instance that implements api.ServerInterface.
func NewHandler(service *service.Service, logger *zap.Logger) api.ServerInterface {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// SendMessage implements api.ServerInterface.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request, userId int64) {
	var body api.SendMessageRequest
	if !h.decode(w, r, &body) {
		return
	}

	req := service.SendRequest{
		UserID:   userId,
		CoachID:  body.CoachId,
		Subject:  body.Subject,
		BodyHTML: body.BodyHtml,
		BodyText: deref(body.BodyText),
	}
	if body.FollowUpDays != nil {
		req.FollowUpDays = *body.FollowUpDays
	}

	msg, err := h.service.Outreach.SendNow(r.Context(), req)
	if err != nil {
		h.sendServiceError(w, r, "send message", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIMessage(msg))
}

// ListMessages implements api.ServerInterface.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request, userId int64, params api.ListMessagesParams) {
	filter := models.ListFilter{
		Status:         params.Status,
		Direction:      params.Direction,
		CoachID:        params.CoachId,
		ConversationID: params.ConversationId,
	}

	messages, err := h.service.Outreach.ListMessages(r.Context(), userId, filter)
	if err != nil {
		h.sendServiceError(w, r, "list messages", err)
		return
	}

	resp := api.MessageListResponse{Messages: make([]api.Message, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, toAPIMessage(m))
	}
	render.JSON(w, r, resp)
}

// SendDraft implements api.ServerInterface.
func (h *Handler) SendDraft(w http.ResponseWriter, r *http.Request, userId int64, messageId int64) {
	msg, err := h.service.Outreach.SendDraft(r.Context(), userId, messageId)
	if err != nil {
		h.sendServiceError(w, r, "send draft", err)
		return
	}

	render.JSON(w, r, toAPIMessage(msg))
}

// ReplyInThread implements api.ServerInterface.
func (h *Handler) ReplyInThread(w http.ResponseWriter, r *http.Request, userId int64, conversationId string) {
	var body api.ReplyRequest
	if !h.decode(w, r, &body) {
		return
	}

	msg, err := h.service.Outreach.ReplyInThread(r.Context(), service.ReplyRequest{
		UserID:         userId,
		ConversationID: conversationId,
		Subject:        body.Subject,
		BodyHTML:       body.BodyHtml,
		BodyText:       deref(body.BodyText),
	})
	if err != nil {
		h.sendServiceError(w, r, "reply in thread", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIMessage(msg))
}

// SaveDraft implements api.ServerInterface.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request, userId int64) {
	var body api.DraftRequest
	if !h.decode(w, r, &body) {
		return
	}

	msg, err := h.service.Outreach.SaveDraft(r.Context(), service.DraftRequest{
		UserID:   userId,
		CoachID:  body.CoachId,
		Subject:  body.Subject,
		BodyHTML: body.BodyHtml,
		BodyText: deref(body.BodyText),
	})
	if err != nil {
		h.sendServiceError(w, r, "save draft", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIMessage(msg))
}

// ScheduleFollowUp implements api.ServerInterface.
func (h *Handler) ScheduleFollowUp(w http.ResponseWriter, r *http.Request, userId int64) {
	var body api.FollowUpRequest
	if !h.decode(w, r, &body) {
		return
	}

	msg, err := h.service.FollowUp.ScheduleFollowUp(r.Context(), service.FollowUpRequest{
		UserID:          userId,
		ParentMessageID: body.ParentMessageId,
		CoachID:         body.CoachId,
		Subject:         body.Subject,
		BodyHTML:        body.BodyHtml,
		BodyText:        deref(body.BodyText),
		DelayDays:       body.DelayDays,
	})
	if err != nil {
		h.sendServiceError(w, r, "schedule follow-up", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAPIMessage(msg))
}

// ImportReplies implements api.ServerInterface.
func (h *Handler) ImportReplies(w http.ResponseWriter, r *http.Request, userId int64) {
	res, err := h.service.Reply.ImportNewReplies(r.Context(), userId)
	if err != nil {
		h.sendServiceError(w, r, "import replies", err)
		return
	}

	render.JSON(w, r, api.ImportResponse{
		Conversations: res.Conversations,
		Imported:      res.Imported,
		Skipped:       res.Skipped,
		Failed:        res.Failed,
	})
}

// RunFollowUpSweep implements api.ServerInterface.
func (h *Handler) RunFollowUpSweep(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.FollowUp.ProcessDue(r.Context(), h.now())
	if err != nil {
		h.sendServiceError(w, r, "run follow-up sweep", err)
		return
	}

	render.JSON(w, r, api.SweepResponse{
		Claimed: res.Claimed,
		Sent:    res.Sent,
		Skipped: res.Skipped,
		Failed:  res.Failed,
	})
}

// ReceiveInboundEmail implements api.ServerInterface. Providers post either
// JSON or the multipart form used by inbound-parse webhooks.
func (h *Handler) ReceiveInboundEmail(w http.ResponseWriter, r *http.Request) {
	var payload api.InboundEmail

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		if err := r.ParseMultipartForm(maxInboundSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidBody, err.Error())
			return
		}
		payload = api.InboundEmail{
			From:      r.FormValue("from"),
			To:        r.FormValue("to"),
			Subject:   r.FormValue("subject"),
			Html:      r.FormValue("html"),
			Text:      r.FormValue("text"),
			Envelope:  r.FormValue("envelope"),
			MessageId: r.FormValue("message_id"),
			Email:     r.FormValue("email"),
		}
	default:
		if !h.decode(w, r, &payload) {
			return
		}
	}

	res, err := h.service.Reply.IngestInbound(r.Context(), service.InboundEmail{
		From:      payload.From,
		To:        payload.To,
		Subject:   payload.Subject,
		HTML:      payload.Html,
		Text:      payload.Text,
		Envelope:  payload.Envelope,
		MessageID: payload.MessageId,
		Raw:       payload.Email,
	})
	if err != nil {
		h.sendServiceError(w, r, "ingest inbound email", err)
		return
	}

	resp := api.InboundResponse{Result: res.Result}
	if res.MessageID != 0 {
		id := res.MessageID
		resp.MessageId = &id
	}
	render.JSON(w, r, resp)
}

// ReceiveDeliveryEvents implements api.ServerInterface. The body is a single
// event or an array of them.
func (h *Handler) ReceiveDeliveryEvents(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidBody, errorMessageInvalidBody)
		return
	}

	var events []api.DeliveryEvent
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(raw, &events)
	} else {
		var ev api.DeliveryEvent
		err = json.Unmarshal(raw, &ev)
		events = append(events, ev)
	}
	if err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidBody, errorMessageInvalidBody)
		return
	}

	var resp api.DeliveryEventsResponse
	for _, ev := range events {
		changed, err := h.service.Outreach.ApplyDeliveryEvent(r.Context(), service.DeliveryEvent{
			ProviderMessageID: ev.ProviderMessageId,
			Event:             ev.Event,
			Timestamp:         ev.Timestamp,
		})
		switch {
		case errors.Is(err, apperr.ErrValidation):
			resp.Skipped++
		case err != nil:
			// Applying an event twice is a no-op; a 5xx makes the provider
			// redeliver the batch.
			h.sendServiceError(w, r, "apply delivery event", err)
			return
		case changed:
			resp.Applied++
		default:
			resp.Skipped++
		}
	}

	render.JSON(w, r, resp)
}

// StartScheduler implements api.ServerInterface.
func (h *Handler) StartScheduler(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.service.Scheduler.Start()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerAlreadyRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerAlreadyRunning, errorMessageSchedulerAlreadyRunning)
			return
		}

		h.logger.Error("Failed to start scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStartScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.SchedulerResponseStatusStarted,
		Message: schedulerMessageStarted,
	})
}

// StopScheduler implements api.ServerInterface.
func (h *Handler) StopScheduler(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.service.Scheduler.Stop()
	if err != nil {
		if errors.Is(err, scheduler.ErrSchedulerNotRunning) {
			h.sendError(w, r, http.StatusConflict, errorCodeSchedulerNotRunning, errorMessageSchedulerNotRunning)
			return
		}

		h.logger.Error("Failed to stop scheduler",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, errorMessageFailedToStopScheduler)
		return
	}

	render.JSON(w, r, api.SchedulerResponse{
		Status:  api.SchedulerResponseStatusStopped,
		Message: schedulerMessageStopped,
	})
}

// HealthCheck implements api.ServerInterface.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	response := api.HealthResponse{
		Status:          health.Status,
		Timestamp:       h.now(),
		CircuitBreakers: health.CircuitBreakers,
	}

	if health.SchedulerStatus != "" {
		status := health.SchedulerStatus
		response.SchedulerStatus = &status
	}

	if health.DatabaseStatus != "" {
		status := health.DatabaseStatus
		response.DatabaseStatus = &status
	}

	if health.RedisStatus != "" {
		status := health.RedisStatus
		response.RedisStatus = &status
	}

	// Degraded still answers 200 so load balancers keep routing.
	if health.Status == api.Unhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeInvalidBody, errorMessageInvalidBody)
		return false
	}
	return true
}

// sendServiceError maps a service error to its HTTP status. Only server-side
// failures are logged.
func (h *Handler) sendServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := apperr.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if status >= http.StatusInternalServerError && code == apperr.CodeInternal {
		message = middleware.ErrorMessageInternal
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(fmt.Sprintf("Failed to %s", op),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("code", code),
			zap.Error(err))
	}

	h.sendError(w, r, status, code, message)
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	now := h.now()
	render.Status(r, statusCode)
	render.JSON(w, r, api.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: &now,
	})
}

func toAPIMessage(m *models.Message) api.Message {
	out := api.Message{
		Id:           m.ID,
		UserId:       m.UserID,
		CoachId:      m.CoachID,
		Direction:    m.Direction,
		Status:       m.Status,
		Subject:      m.Subject,
		BodyHtml:     m.BodyHTML,
		IsFollowUp:   m.IsFollowUp,
		HasResponded: m.HasResponded,
		CreatedAt:    m.CreatedAt,
	}
	if m.BodyText.Valid {
		out.BodyText = &m.BodyText.String
	}
	if m.ProviderMessageID.Valid {
		out.ProviderMessageId = &m.ProviderMessageID.String
	}
	if m.ConversationID.Valid {
		out.ConversationId = &m.ConversationID.String
	}
	if m.ParentMessageID.Valid {
		out.ParentMessageId = &m.ParentMessageID.Int64
	}
	if m.SentAt.Valid {
		out.SentAt = &m.SentAt.Time
	}
	if m.ScheduledFor.Valid {
		out.ScheduledFor = &m.ScheduledFor.Time
	}
	if m.ReceivedAt.Valid {
		out.ReceivedAt = &m.ReceivedAt.Time
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
