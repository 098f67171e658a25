package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/popeskul/outreach-engine/internal/api"
	"github.com/popeskul/outreach-engine/internal/middleware"
)

const errorCodeInvalidParameter = "INVALID_PARAMETER"

func setupRouter(handler api.ServerInterface, webhookSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Instrument)
	r.Use(guardWebhooks(webhookSecret))

	r.Handle("/metrics", promhttp.Handler())

	return api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: invalidParameter,
	})
}

// guardWebhooks applies the shared-secret check to /webhooks/ routes only.
func guardWebhooks(secret string) func(http.Handler) http.Handler {
	auth := middleware.WebhookAuth(secret)
	return func(next http.Handler) http.Handler {
		guarded := auth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/webhooks/") {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func invalidParameter(w http.ResponseWriter, r *http.Request, err error) {
	now := time.Now()
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, api.ErrorResponse{
		Error:     errorCodeInvalidParameter,
		Message:   err.Error(),
		Timestamp: &now,
	})
}
