package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds middleware configuration.
type Config struct {
	Logger *zap.Logger

	CORS *CORSConfig

	RateLimit      rate.Limit
	RateLimitBurst int
	// RateLimiter, when set, is used instead of one built from RateLimit so
	// the caller can stop its cleanup loop.
	RateLimiter *RateLimiter

	RequestTimeout time.Duration
}

// Chain wraps a handler with the standard stack. The request id is assigned
// first so every inner layer can log it.
func Chain(config *Config) func(http.Handler) http.Handler {
	rateLimiter := config.RateLimiter
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(config.RateLimit, config.RateLimitBurst)
	}

	return func(handler http.Handler) http.Handler {
		h := handler

		if config.RequestTimeout > 0 {
			h = Timeout(config.RequestTimeout)(h)
		}

		h = rateLimiter.Middleware()(h)

		if config.CORS != nil {
			h = CORS(config.CORS)(h)
		}

		h = Recovery(config.Logger)(h)
		h = Logger(config.Logger)(h)
		h = RequestID(h)

		return h
	}
}
