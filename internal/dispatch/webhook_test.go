package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixhook/internal/models"
)

func TestWebhookSend(t *testing.T) {
	var gotContentType string
	var gotDoc models.OutboundDocument

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"received"}`))
	}))
	defer srv.Close()

	doc := models.OutboundDocument{
		PaymentToken: "pay-1",
		ResultType:   models.PaymentCompleted,
		EventName:    "GopherConf",
		Emails:       []string{"ada@example.org"},
	}

	w := NewWebhook(5 * time.Second)
	err := w.Send(context.Background(), srv.URL, doc)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "pay-1", gotDoc.PaymentToken)
	assert.Equal(t, []string{"ada@example.org"}, gotDoc.Emails)
}

func TestWebhookSendNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	w := NewWebhook(5 * time.Second)
	err := w.Send(context.Background(), srv.URL, models.OutboundDocument{})
	assert.ErrorContains(t, err, "502")
}

func TestWebhookSendConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	w := NewWebhook(time.Second)
	err := w.Send(context.Background(), srv.URL, models.OutboundDocument{})
	assert.Error(t, err)
}
