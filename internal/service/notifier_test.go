package service

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"bank-ledger/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestWebhookNotifier_Notify_Delivers(t *testing.T) {
	var capturedReq *http.Request
	delivered := make(chan struct{}, 1)
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			capturedReq = req
			delivered <- struct{}{}
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(nil),
			}, nil
		},
	}

	notifier := NewWebhookNotifier("https://notify.example.com/events", httpClient, newTestLogger())

	err := notifier.Notify(context.Background(), domain.NotificationEvent{
		EventType: domain.EventDeposit,
		AccountNo: "ACC-0001",
		Amount:    dec("250"),
	})
	assert.NoError(t, err)

	select {
	case <-delivered:
		assert.NotNil(t, capturedReq)
		assert.Equal(t, "application/json", capturedReq.Header.Get("Content-Type"))
	case <-time.After(2 * time.Second):
		t.Fatal("notification delivery timed out")
	}
}

func TestWebhookNotifier_Notify_NoURLConfigured(t *testing.T) {
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			t.Error("should not be called")
			return nil, nil
		},
	}

	notifier := NewWebhookNotifier("", httpClient, newTestLogger())

	err := notifier.Notify(context.Background(), domain.NotificationEvent{
		EventType: domain.EventWithdrawal,
		AccountNo: "ACC-0002",
		Amount:    dec("10"),
	})
	assert.NoError(t, err)
}

func TestWebhookNotifier_Notify_FailureDoesNotSurface(t *testing.T) {
	var calls atomic.Int32
	attempted := make(chan struct{}, 1)
	httpClient := &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			if calls.Add(1) == 1 {
				attempted <- struct{}{}
			}
			return &http.Response{
				StatusCode: 500,
				Body:       io.NopCloser(nil),
			}, nil
		},
	}

	notifier := NewWebhookNotifier("https://notify.example.com/events", httpClient, newTestLogger())

	// A failing collaborator never propagates an error to the ledger caller.
	err := notifier.Notify(context.Background(), domain.NotificationEvent{
		EventType: domain.EventTransfer,
		AccountNo: "ACC-0003",
		Amount:    dec("300"),
	})
	assert.NoError(t, err)

	select {
	case <-attempted:
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery attempt observed")
	}
}
