package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/outreach-engine/internal/middleware"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(middleware.RequestIDHeader))

	req.Header.Set(middleware.RequestIDHeader, "given-id")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "given-id", seen)
}

func TestRateLimiter(t *testing.T) {
	rl := middleware.NewRateLimiter(rate.Limit(1), 1)
	defer rl.Stop()
	handler := rl.Middleware()(http.HandlerFunc(ok))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("127.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("127.0.0.1:5678"), "same host on another port shares the bucket")
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"))

	time.Sleep(time.Second)
	assert.Equal(t, http.StatusOK, do("127.0.0.1:1234"))
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(middleware.DefaultCORSConfig())(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), middleware.WebhookSecretHeader)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	handler := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), middleware.ErrorCodeInternal)
}

func TestTimeout(t *testing.T) {
	t.Run("slow handler", func(t *testing.T) {
		handler := middleware.Timeout(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			w.WriteHeader(http.StatusTeapot)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusRequestTimeout, w.Code)
		assert.Contains(t, w.Body.String(), middleware.ErrorCodeRequestTimeout)
	})

	t.Run("fast handler", func(t *testing.T) {
		handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Done", "yes")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("created"))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "yes", w.Header().Get("X-Done"))
		assert.Equal(t, "created", w.Body.String())
	})
}

func TestWebhookAuth(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		header   string
		query    string
		wantCode int
	}{
		{name: "disabled", wantCode: http.StatusOK},
		{name: "header match", secret: "s3cret", header: "s3cret", wantCode: http.StatusOK},
		{name: "query match", secret: "s3cret", query: "?secret=s3cret", wantCode: http.StatusOK},
		{name: "missing", secret: "s3cret", wantCode: http.StatusUnauthorized},
		{name: "wrong", secret: "s3cret", header: "nope", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.WebhookAuth(tt.secret)(http.HandlerFunc(ok))
			req := httptest.NewRequest(http.MethodPost, "/webhooks/inbound"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(middleware.WebhookSecretHeader, tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestInstrument(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Instrument)
	r.Get("/users/{userId}/messages", ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1/messages", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
