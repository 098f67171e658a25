package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/mailer"
)

const transactionalName = "transactional"

type transactionalRequest struct {
	From    string            `json:"from"`
	To      []string          `json:"to"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html,omitempty"`
	Text    string            `json:"text,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type transactionalResponse struct {
	ID string `json:"id"`
}

// StatusError is a non-2xx answer from the transactional API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Body)
}

// Transactional sends through a stateless HTTP email API. It has no notion of
// threads and never returns a conversation id.
type Transactional struct {
	cfg        config.TransactionalConfig
	httpClient *http.Client
	breaker    *CircuitBreaker
	logger     *zap.Logger
}

func NewTransactional(cfg config.TransactionalConfig, tcfg config.TransportConfig, logger *zap.Logger) *Transactional {
	return &Transactional{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: tcfg.Timeout(),
		},
		breaker: NewCircuitBreaker(transactionalName, &tcfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

func (t *Transactional) Name() string {
	return transactionalName
}

func (t *Transactional) Enabled() bool {
	return t.cfg.Enabled()
}

func (t *Transactional) Breaker() *CircuitBreaker {
	return t.breaker
}

func (t *Transactional) Send(ctx context.Context, env *mailer.Envelope) (Result, error) {
	addr := t.cfg.FromAddress
	if addr == "" {
		addr = env.From
	}
	from := addr
	if env.FromName != "" {
		from = fmt.Sprintf("%s <%s>", env.FromName, addr)
	}

	reqBody := transactionalRequest{
		From:    from,
		To:      []string{env.To},
		Subject: env.Subject,
		HTML:    env.HTML,
		Text:    env.Text,
	}
	headers := make(map[string]string, len(env.Headers)+2)
	for k, v := range env.Headers {
		headers[k] = v
	}
	if env.MessageID != "" {
		headers["Message-ID"] = "<" + env.MessageID + ">"
	}
	// Replies must still reach the user when the platform address is used.
	if env.From != "" && env.From != addr {
		headers["Reply-To"] = env.From
	}
	if len(headers) > 0 {
		reqBody.Headers = headers
	}

	var resp transactionalResponse
	err := t.breaker.Execute(ctx, func() error {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL, bytes.NewBuffer(jsonData))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)

		httpResp, err := t.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer func() {
			if err := httpResp.Body.Close(); err != nil {
				t.logger.Warn("Failed to close response body", zap.Error(err))
			}
		}()

		if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
			body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
			return &StatusError{StatusCode: httpResp.StatusCode, Body: string(body)}
		}

		if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
			t.logger.Debug("Transactional response had no JSON body", zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	id := resp.ID
	if id == "" {
		id = "txn-" + uuid.NewString()
	}

	return Result{ProviderMessageID: id, Transport: transactionalName}, nil
}
