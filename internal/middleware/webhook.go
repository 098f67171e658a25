package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/render"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookAuth rejects requests whose shared secret does not match. The
// secret may come in the header or, for providers that cannot set headers,
// as the "secret" query parameter. An empty secret disables the check.
func WebhookAuth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(WebhookSecretHeader)
			if got == "" {
				got = r.URL.Query().Get("secret")
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]interface{}{
					"error":   ErrorCodeUnauthorized,
					"message": ErrorMessageUnauthorized,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
