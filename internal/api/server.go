package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Send a message to a coach now.
	// (POST /users/{userId}/messages)
	SendMessage(w http.ResponseWriter, r *http.Request, userId int64)
	// List a user's messages.
	// (GET /users/{userId}/messages)
	ListMessages(w http.ResponseWriter, r *http.Request, userId int64, params ListMessagesParams)
	// Send a stored draft.
	// (POST /users/{userId}/messages/{messageId}/send)
	SendDraft(w http.ResponseWriter, r *http.Request, userId int64, messageId int64)
	// Reply inside an existing conversation.
	// (POST /users/{userId}/conversations/{conversationId}/replies)
	ReplyInThread(w http.ResponseWriter, r *http.Request, userId int64, conversationId string)
	// Save a draft.
	// (POST /users/{userId}/drafts)
	SaveDraft(w http.ResponseWriter, r *http.Request, userId int64)
	// Schedule a follow-up.
	// (POST /users/{userId}/follow-ups)
	ScheduleFollowUp(w http.ResponseWriter, r *http.Request, userId int64)
	// Import new replies from the user's mailbox.
	// (POST /users/{userId}/imports)
	ImportReplies(w http.ResponseWriter, r *http.Request, userId int64)
	// Run the due follow-up sweep once.
	// (POST /follow-ups/sweep)
	RunFollowUpSweep(w http.ResponseWriter, r *http.Request)
	// Inbound email webhook.
	// (POST /webhooks/inbound)
	ReceiveInboundEmail(w http.ResponseWriter, r *http.Request)
	// Delivery events webhook.
	// (POST /webhooks/events)
	ReceiveDeliveryEvents(w http.ResponseWriter, r *http.Request)
	// (POST /scheduler/start)
	StartScheduler(w http.ResponseWriter, r *http.Request)
	// (POST /scheduler/stop)
	StopScheduler(w http.ResponseWriter, r *http.Request)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts path and query parameters before calling
// the ServerInterface.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	var v int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return 0, false
	}
	return v, true
}

func (siw *ServerInterfaceWrapper) pathString(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return "", false
	}
	return v, true
}

// SendMessage operation middleware
func (siw *ServerInterfaceWrapper) SendMessage(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}
	siw.Handler.SendMessage(w, r, userId)
}

// ListMessages operation middleware
func (siw *ServerInterfaceWrapper) ListMessages(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}

	var params ListMessagesParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "status", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "direction", query, &params.Direction); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "direction", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "coach_id", query, &params.CoachId); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "coach_id", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "conversation_id", query, &params.ConversationId); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "conversation_id", Err: err})
		return
	}

	siw.Handler.ListMessages(w, r, userId, params)
}

// SendDraft operation middleware
func (siw *ServerInterfaceWrapper) SendDraft(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}
	messageId, ok := siw.pathInt64(w, r, "messageId")
	if !ok {
		return
	}
	siw.Handler.SendDraft(w, r, userId, messageId)
}

// ReplyInThread operation middleware
func (siw *ServerInterfaceWrapper) ReplyInThread(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}
	conversationId, ok := siw.pathString(w, r, "conversationId")
	if !ok {
		return
	}
	siw.Handler.ReplyInThread(w, r, userId, conversationId)
}

// SaveDraft operation middleware
func (siw *ServerInterfaceWrapper) SaveDraft(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}
	siw.Handler.SaveDraft(w, r, userId)
}

// ScheduleFollowUp operation middleware
func (siw *ServerInterfaceWrapper) ScheduleFollowUp(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}
	siw.Handler.ScheduleFollowUp(w, r, userId)
}

// ImportReplies operation middleware
func (siw *ServerInterfaceWrapper) ImportReplies(w http.ResponseWriter, r *http.Request) {
	userId, ok := siw.pathInt64(w, r, "userId")
	if !ok {
		return
	}
	siw.Handler.ImportReplies(w, r, userId)
}

// InvalidParamFormatError is returned when a path or query parameter does
// not parse.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// ChiServerOptions configures the generated router.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post("/users/{userId}/messages", wrapper.SendMessage)
		r.Get("/users/{userId}/messages", wrapper.ListMessages)
		r.Post("/users/{userId}/messages/{messageId}/send", wrapper.SendDraft)
		r.Post("/users/{userId}/conversations/{conversationId}/replies", wrapper.ReplyInThread)
		r.Post("/users/{userId}/drafts", wrapper.SaveDraft)
		r.Post("/users/{userId}/follow-ups", wrapper.ScheduleFollowUp)
		r.Post("/users/{userId}/imports", wrapper.ImportReplies)
		r.Post("/follow-ups/sweep", si.RunFollowUpSweep)
		r.Post("/webhooks/inbound", si.ReceiveInboundEmail)
		r.Post("/webhooks/events", si.ReceiveDeliveryEvents)
		r.Post("/scheduler/start", si.StartScheduler)
		r.Post("/scheduler/stop", si.StopScheduler)
		r.Get("/health", si.HealthCheck)
	})

	return r
}
