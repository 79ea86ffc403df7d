package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("generative API returned no text")

type Options struct {
	APIKey             string
	BaseURL            string
	Model              string
	AgentNumberSomalia string
	AgentNumberUganda  string
	RetryMax           int
	RetryWaitMin       time.Duration
	RetryWaitMax       time.Duration
	Timeout            time.Duration
}

// Client wraps the Gemini SDK for status generation, community chat and the guide.
type Client struct {
	models       *genai.Models
	model        string
	agentSomalia string
	agentUganda  string
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 250 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	rc.HTTPClient.Timeout = 30 * time.Second
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	cfg := &genai.ClientConfig{
		APIKey:     strings.TrimSpace(opts.APIKey),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: rc.StandardClient(),
	}
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		models:       client.Models,
		model:        strings.TrimSpace(opts.Model),
		agentSomalia: opts.AgentNumberSomalia,
		agentUganda:  opts.AgentNumberUganda,
	}, nil
}

// generate sends one user prompt and returns the text of the first candidate.
func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)

	fields := logger.Fields{
		"model":      c.model,
		"durationMs": time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.Warn("gemini generate failed", fields)
		return "", fmt.Errorf("generate content: %w", err)
	}
	logger.Info("gemini generate response", fields)

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func jsonOutput(schema *genai.Schema, temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr(temperature),
	}
}
