package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bank-ledger/internal/core/domain"
	"bank-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyRetryIntervals defines the delivery retry schedule.
var notifyRetryIntervals = []time.Duration{
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// webhookNotifier implements ports.Notifier by POSTing committed events to
// the notification collaborator's webhook URL. Failures are logged and
// retried in the background; they never surface to the ledger caller and
// never roll anything back.
type webhookNotifier struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewWebhookNotifier creates a webhook-backed notifier. An empty URL yields a
// notifier that drops every event, for deployments without a collaborator.
func NewWebhookNotifier(url string, httpClient HTTPClient, log zerolog.Logger) ports.Notifier {
	return &webhookNotifier{
		url:        url,
		httpClient: httpClient,
		log:        log,
	}
}

// Notify hands the event off for asynchronous delivery. The returned error is
// only for payloads that cannot be serialized; delivery outcomes are not
// reported back.
func (s *webhookNotifier) Notify(_ context.Context, event domain.NotificationEvent) error {
	if s.url == "" {
		s.log.Debug().Str("event_type", string(event.EventType)).Msg("notify: no webhook URL configured, skipping")
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Str("event_type", string(event.EventType)).Msg("notify: failed to marshal event")
		return err
	}

	go s.deliverWithRetries(payload, string(event.EventType))

	return nil
}

// deliverWithRetries attempts delivery until a 2xx response or the schedule
// is exhausted.
func (s *webhookNotifier) deliverWithRetries(payload []byte, eventType string) {
	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifyRetryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewReader(payload))
		if err != nil {
			s.log.Error().Err(err).Str("event_type", eventType).Int("attempt", attempt+1).Msg("notify: failed to create request")
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.log.Warn().Err(err).Str("event_type", eventType).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().Str("event_type", eventType).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: delivered")
			return
		}

		s.log.Warn().Str("event_type", eventType).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	s.log.Error().Str("event_type", eventType).Msg("notify: all retry attempts exhausted")
}
