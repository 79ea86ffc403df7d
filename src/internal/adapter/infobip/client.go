package infobip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
)

type Options struct {
	BaseURL        string
	APIKey         string
	WhatsAppSender string
	SMSSenderID    string
	EmailSender    string
	RetryMax       int
	RetryWaitMin   time.Duration
	RetryWaitMax   time.Duration
	Timeout        time.Duration
}

// Client sends email, WhatsApp and SMS through the Infobip REST API.
type Client struct {
	baseURL        string
	apiKey         string
	whatsAppSender string
	smsSenderID    string
	emailSender    string
	http           *retryablehttp.Client
}

func NewClient(opts Options) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.Logger = leveledLogger{}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		apiKey:         strings.TrimSpace(opts.APIKey),
		whatsAppSender: opts.WhatsAppSender,
		smsSenderID:    opts.SMSSenderID,
		emailSender:    opts.EmailSender,
		http:           rc,
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	if !c.Configured() {
		return fmt.Errorf("infobip client is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode infobip request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create infobip request: %w", err)
	}
	req.Header.Set("Authorization", "App "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call infobip %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("infobip %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Info("infobip request accepted", logger.Fields{
		"path":   path,
		"status": resp.StatusCode,
	})
	return nil
}

// leveledLogger routes retry diagnostics into the service logger.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Error("infobip http: "+msg, nil, kvFields(keysAndValues))
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Warn("infobip http: "+msg, kvFields(keysAndValues))
}

func (leveledLogger) Info(string, ...interface{}) {}

func (leveledLogger) Debug(string, ...interface{}) {}

func kvFields(keysAndValues []interface{}) logger.Fields {
	fields := logger.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if key == "url" {
			continue
		}
		fields[key] = fmt.Sprint(keysAndValues[i+1])
	}
	return fields
}
