package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentSchema struct {
	Type string `json:"type"`
}

type sentRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig *struct {
		ResponseMimeType string      `json:"responseMimeType"`
		ResponseSchema   *sentSchema `json:"responseSchema"`
	} `json:"generationConfig"`
}

type capturedRequest struct {
	path  string
	key   string
	body  sentRequest
	calls int
}

func (c capturedRequest) prompt() string {
	if len(c.body.Contents) == 0 || len(c.body.Contents[0].Parts) == 0 {
		return ""
	}
	return c.body.Contents[0].Parts[0].Text
}

func (c capturedRequest) schemaType() string {
	if c.body.GenerationConfig == nil || c.body.GenerationConfig.ResponseSchema == nil {
		return ""
	}
	return c.body.GenerationConfig.ResponseSchema.Type
}

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL
	if opts.APIKey == "" {
		opts.APIKey = "k"
	}
	if opts.Model == "" {
		opts.Model = "m"
	}
	client, err := NewClient(context.Background(), opts)
	require.NoError(t, err)
	return client
}

func newTestServer(t *testing.T, status int, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.calls++
		captured.path = r.URL.Path
		captured.key = r.Header.Get("x-goog-api-key")
		captured.body = sentRequest{}
		_ = json.NewDecoder(r.Body).Decode(&captured.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func candidate(text string) string {
	payload, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(payload)
}

func testDraft() domain.TransactionDraft {
	d := domain.NewDraft()
	d.SetAmount(decimal.NewFromInt(100), domain.DirectionSomToUga)
	d.SetParties(domain.Parties{
		Recipient:   domain.Recipient{FullName: "Grace", Phone: "772123456", WithdrawalMethod: domain.WithdrawalMobileMoney, Network: domain.NetworkMTNUganda},
		SenderName:  "Abdi",
		SenderPhone: "771234567",
	})
	d.SetReference("EVC-7781")
	return d
}

func TestGenerateStatusParsesStructuredOutput(t *testing.T) {
	var captured capturedRequest
	reply := candidate(`{"transactionId":"SUR8X2K4P9QA","status":"WAITING_VERIFICATION","message":"Admin is verifying","estimatedArrival":"15-30 Minutes","fees":42}`)
	srv := newTestServer(t, http.StatusOK, reply, &captured)

	client := newTestClient(t, srv, Options{APIKey: "test-key", Model: "gemini-2.5-flash"})
	result, err := client.GenerateStatus(context.Background(), testDraft())
	require.NoError(t, err)

	assert.Equal(t, "SUR8X2K4P9QA", result.TransactionID)
	assert.Equal(t, domain.TransactionStatusWaitingVerification, result.Status)
	assert.Equal(t, "42", result.Fees.String(), "raw model fee is returned unsanitized")

	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", captured.path)
	assert.Equal(t, "test-key", captured.key)
	require.NotNil(t, captured.body.GenerationConfig)
	assert.Equal(t, "application/json", captured.body.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "OBJECT", captured.schemaType())

	prompt := captured.prompt()
	assert.Contains(t, prompt, "Somalia to Uganda")
	assert.Contains(t, prompt, "+252 771234567")
	assert.Contains(t, prompt, "The fee should be exactly 1.5.")
	assert.Contains(t, prompt, "Mobile Money: MTN_UGANDA - 772123456")
}

func TestGenerateStatusRejectsUnparseableOutput(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, candidate("not json at all"), &captured)

	client := newTestClient(t, srv, Options{})
	_, err := client.GenerateStatus(context.Background(), testDraft())
	assert.Error(t, err)
}

func TestGenerateStatusRejectsUnknownStatus(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, candidate(`{"transactionId":"X","status":"DONE","fees":1}`), &captured)

	client := newTestClient(t, srv, Options{})
	_, err := client.GenerateStatus(context.Background(), testDraft())
	assert.Error(t, err)
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`, &captured)

	client := newTestClient(t, srv, Options{APIKey: "bad"})
	_, err := client.Ask(context.Background(), "How long does it take?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, 1, captured.calls, "client errors are not retried")
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var captured capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.calls++
		w.Header().Set("Content-Type", "application/json")
		if captured.calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
			return
		}
		_, _ = w.Write([]byte(candidate("Send to the agent number, then enter the reference.")))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(t, srv, Options{RetryMax: 2, RetryWaitMin: time.Millisecond, RetryWaitMax: 5 * time.Millisecond})
	answer, err := client.Ask(context.Background(), "How does it work?")
	require.NoError(t, err)
	assert.Equal(t, "Send to the agent number, then enter the reference.", answer)
	assert.Equal(t, 2, captured.calls)
}

func TestAskReturnsEmptyResponseError(t *testing.T) {
	var captured capturedRequest
	srv := newTestServer(t, http.StatusOK, candidate("   "), &captured)

	client := newTestClient(t, srv, Options{AgentNumberSomalia: "+252 771 957 722", AgentNumberUganda: "+256 779 334 452"})
	_, err := client.Ask(context.Background(), "What are the fees?")
	assert.True(t, errors.Is(err, ErrEmptyResponse))

	prompt := captured.prompt()
	assert.Contains(t, prompt, "+252 771 957 722 (Somalia)")
	assert.Contains(t, prompt, "1.5% flat fee")
	assert.Empty(t, captured.schemaType(), "the guide asks for free text")
}

func TestChatRepliesTrimsHistoryAndCapsReplies(t *testing.T) {
	var captured capturedRequest
	reply := candidate(`[{"sender":"Hodan","text":"Admin is fast today"},{"sender":"Okello","text":"Send the screenshot"},{"sender":"Extra","text":"third"}]`)
	srv := newTestServer(t, http.StatusOK, reply, &captured)

	history := make([]domain.ChatMessage, 0, 8)
	for i := 0; i < 8; i++ {
		history = append(history, domain.ChatMessage{Sender: "user", Text: "line-" + string(rune('a'+i))})
	}

	client := newTestClient(t, srv, Options{})
	replies, err := client.ChatReplies(context.Background(), "Is the agent online?", history)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "Hodan", replies[0].Sender)

	prompt := captured.prompt()
	assert.False(t, strings.Contains(prompt, "line-c"), "only the last five lines are sent")
	assert.Contains(t, prompt, "line-d")
	assert.Contains(t, prompt, "line-h")
	assert.Equal(t, "ARRAY", captured.schemaType())
}
