package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teampulse/attendance-backend-go/internal/domain/team"
)

// Sender posts notification cards to a team's configured webhook. Delivery is
// best effort: callers treat the returned bool as advisory and never fail the
// surrounding operation on it.
type Sender interface {
	SendCard(ctx context.Context, t team.Team, eventKind string, fields map[string]string) bool
}

type Notifier struct {
	client *http.Client
	logger *slog.Logger
}

func NewNotifier(timeout time.Duration, logger *slog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type card struct {
	Event  string            `json:"event"`
	SentAt string            `json:"sent_at"`
	Fields map[string]string `json:"fields"`
}

// SendCard implements Sender. It reports whether the endpoint acknowledged
// with a 2xx; teams without an enabled webhook URL are skipped silently.
func (n *Notifier) SendCard(ctx context.Context, t team.Team, eventKind string, fields map[string]string) bool {
	if !t.WebhookEnabled || t.WebhookURL == nil || *t.WebhookURL == "" {
		return false
	}

	deliveryID := uuid.NewString()
	body, err := json.Marshal(card{
		Event:  eventKind,
		SentAt: time.Now().UTC().Format(time.RFC3339),
		Fields: fields,
	})
	if err != nil {
		n.logger.Error("failed to encode webhook card", "delivery_id", deliveryID, "team_id", t.ID, "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *t.WebhookURL, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("failed to build webhook request", "delivery_id", deliveryID, "team_id", t.ID, "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", deliveryID)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", "delivery_id", deliveryID, "team_id", t.ID, "event", eventKind, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Warn("webhook delivery rejected", "delivery_id", deliveryID, "team_id", t.ID, "event", eventKind, "status", resp.StatusCode)
		return false
	}

	n.logger.Info("webhook delivered", "delivery_id", deliveryID, "team_id", t.ID, "event", eventKind)
	return true
}
