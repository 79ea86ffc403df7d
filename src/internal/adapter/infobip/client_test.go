package infobip

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(baseURL string, retryMax int) *Client {
	return NewClient(Options{
		BaseURL:        baseURL,
		APIKey:         "secret-key",
		WhatsAppSender: "447860099299",
		SMSSenderID:    "SomalUganda",
		EmailSender:    "remit@example.com",
		RetryMax:       retryMax,
		RetryWaitMin:   time.Millisecond,
		RetryWaitMax:   2 * time.Millisecond,
		Timeout:        time.Second,
	})
}

func TestSendEmailBuildsInfobipPayload(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL, 0).SendEmail(context.Background(), "admin@example.com", "New Transfer Request", "body")
	require.NoError(t, err)

	assert.Equal(t, "/email/4/messages", gotPath)
	assert.Equal(t, "App secret-key", gotAuth)

	messages := gotBody["messages"].([]any)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "remit@example.com", msg["sender"])
	dest := msg["destinations"].([]any)[0].(map[string]any)["to"].([]any)[0].(map[string]any)
	assert.Equal(t, "admin@example.com", dest["destination"])
	assert.Equal(t, "New Transfer Request", msg["content"].(map[string]any)["subject"])
}

func TestSendWhatsAppAndSMSPayloads(t *testing.T) {
	bodies := map[string]map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newClient(srv.URL, 0)
	require.NoError(t, client.SendWhatsApp(context.Background(), "252771234567", "hello"))
	require.NoError(t, client.SendSMS(context.Background(), "256772123456", "funds"))

	wa := bodies["/whatsapp/1/message/text"]
	assert.Equal(t, "447860099299", wa["from"])
	assert.Equal(t, "252771234567", wa["to"])
	assert.Equal(t, "hello", wa["content"].(map[string]any)["text"])

	sms := bodies["/sms/2/text/advanced"]["messages"].([]any)[0].(map[string]any)
	assert.Equal(t, "SomalUganda", sms["from"])
	assert.Equal(t, "funds", sms["text"])
	assert.Equal(t, "256772123456", sms["destinations"].([]any)[0].(map[string]any)["to"])
}

func TestPostRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newClient(srv.URL, 2).SendSMS(context.Background(), "256772123456", "retry me")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPostReportsClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"requestError":{"serviceException":{"text":"Invalid login details"}}}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL, 2).SendWhatsApp(context.Background(), "252771234567", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestUnconfiguredClientFails(t *testing.T) {
	client := NewClient(Options{})
	assert.False(t, client.Configured())
	assert.Error(t, client.SendSMS(context.Background(), "256772123456", "x"))
}
