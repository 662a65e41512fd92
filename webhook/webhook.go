// Package webhook notifies an HTTP endpoint about finished runs and layout
// drift. Payloads are signed with HMAC-SHA256 when a secret is configured.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/leekduck/metrics"
	"github.com/use-agent/leekduck/models"
)

// Event types.
const (
	EventRunCompleted  = "run.completed"
	EventLayoutDrifted = "layout.drifted"
)

// SignatureHeader carries "sha256=<hex>" of the request body.
const SignatureHeader = "X-Leekduck-Signature"

// DefaultDelays are the waits before each delivery attempt.
var DefaultDelays = []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}

// Event is the payload sent to webhook endpoints.
type Event struct {
	Type      string `json:"type"`
	RunID     string `json:"run_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// NewEvent stamps an event with a fresh run ID and the current time.
func NewEvent(typ string, data any) *Event {
	return &Event{
		Type:      typ,
		RunID:     uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Data:      data,
	}
}

// ListingSummary is the per-kind payload of run and drift events.
type ListingSummary struct {
	Kind     models.Kind         `json:"kind"`
	Success  bool                `json:"success"`
	Count    int                 `json:"count"`
	Failures int                 `json:"failures"`
	Error    *models.ErrorDetail `json:"error,omitempty"`
	Drift    *models.DriftReport `json:"drift,omitempty"`
}

// Summarize reduces responses to their summaries, skipping nil entries.
func Summarize(responses ...*models.ListResponse) []ListingSummary {
	out := make([]ListingSummary, 0, len(responses))
	for _, r := range responses {
		if r == nil {
			continue
		}
		out = append(out, ListingSummary{
			Kind:     r.Kind,
			Success:  r.Success,
			Count:    r.Count,
			Failures: len(r.Failures),
			Error:    r.Error,
			Drift:    r.Drift,
		})
	}
	return out
}

// Drifted returns the responses whose layout moved past the threshold.
func Drifted(responses ...*models.ListResponse) []*models.ListResponse {
	var out []*models.ListResponse
	for _, r := range responses {
		if r != nil && r.Drift != nil && r.Drift.Drifted {
			out = append(out, r)
		}
	}
	return out
}

// Sign returns the signature header value for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// Deliver sends a webhook event once.
func Deliver(ctx context.Context, url, secret string, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Leekduck-Webhook/1.0")
	if secret != "" {
		req.Header.Set(SignatureHeader, Sign(secret, body))
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// DeliverRetry delivers with one attempt per delay, stopping at the first
// success or when ctx is done. It returns the last error.
func DeliverRetry(ctx context.Context, url, secret string, event *Event, delays []time.Duration) error {
	var lastErr error
	for attempt, delay := range delays {
		if delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		lastErr = Deliver(attemptCtx, url, secret, event)
		cancel()
		if lastErr == nil {
			metrics.WebhookDeliveries.WithLabelValues("success").Inc()
			slog.Info("webhook delivered",
				"url", url,
				"event", event.Type,
				"run_id", event.RunID,
				"attempt", attempt+1,
			)
			return nil
		}
		slog.Warn("webhook delivery failed",
			"url", url,
			"event", event.Type,
			"run_id", event.RunID,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}
	metrics.WebhookDeliveries.WithLabelValues("failed").Inc()
	slog.Error("webhook delivery exhausted all retries",
		"url", url,
		"event", event.Type,
		"run_id", event.RunID,
	)
	return lastErr
}

// DeliverAsync runs DeliverRetry with DefaultDelays in the background.
func DeliverAsync(url, secret string, event *Event) {
	go func() {
		_ = DeliverRetry(context.Background(), url, secret, event, DefaultDelays)
	}()
}
