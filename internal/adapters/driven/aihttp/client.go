// Package aihttp is the HTTP adapter for the AI text-generation
// service. It implements the Generator, Recommender and
// FactorRecomputer driven ports. Generation responses arrive as an
// SSE-style stream of data lines; the other endpoints are plain JSON.
package aihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/logger"
)

// Ensure Client implements the driven ports.
var (
	_ driven.Generator        = (*Client)(nil)
	_ driven.Recommender      = (*Client)(nil)
	_ driven.FactorRecomputer = (*Client)(nil)
)

// DefaultTimeout is the per-request timeout. Generation streams can run
// long; the timeout covers the whole stream.
const DefaultTimeout = 120 * time.Second

// requestsPerSecond throttles calls to the AI service.
const requestsPerSecond = 2

// Client calls the AI service over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Useful for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithModel sets the model name sent with generation requests.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// New creates a client for the AI service at baseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generatePayload is the generation request body.
type generatePayload struct {
	Model         string `json:"model,omitempty"`
	JobSeries     string `json:"jobSeries"`
	PositionTitle string `json:"positionTitle"`
	Agency        string `json:"agency,omitempty"`
	Organization  string `json:"organization,omitempty"`
	Duties        string `json:"duties"`
	GSGrade       string `json:"gsGrade,omitempty"`
	Stream        bool   `json:"stream"`
}

// Generate requests a document draft and consumes the response stream,
// returning the accumulated text once the stream closes. On a stream
// error the text accumulated so far is returned alongside the error.
func (c *Client) Generate(ctx context.Context, req driven.GenerateRequest) (string, error) {
	payload := generatePayload{
		Model:         c.model,
		JobSeries:     req.JobSeries,
		PositionTitle: req.PositionTitle,
		Agency:        req.Agency,
		Organization:  req.Organization,
		Duties:        req.Duties,
		GSGrade:       req.GSGrade,
		Stream:        true,
	}

	resp, err := c.post(ctx, "/api/generate", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	text, err := accumulateStream(resp.Body)
	if err != nil {
		return text, fmt.Errorf("reading generation stream: %w", err)
	}
	return text, nil
}

// Recommend sends duties text and returns structured classification
// recommendations.
func (c *Client) Recommend(ctx context.Context, duties string) (*domain.Recommendation, error) {
	resp, err := c.post(ctx, "/api/recommend", map[string]string{"duties": duties})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rec domain.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding recommendation: %w", err)
	}
	return &rec, nil
}

// RecomputeFactors sends current factor narratives and returns the
// recomputed per-factor evaluation and grade summary.
func (c *Client) RecomputeFactors(ctx context.Context, factors map[string]string) (*domain.FactorEvaluation, error) {
	resp, err := c.post(ctx, "/api/factors", map[string]any{"factors": factors})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var eval domain.FactorEvaluation
	if err := json.NewDecoder(resp.Body).Decode(&eval); err != nil {
		return nil, fmt.Errorf("decoding factor evaluation: %w", err)
	}
	return &eval, nil
}

// post sends a rate-limited JSON request and verifies the status.
func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logger.Debug("POST %s%s", c.baseURL, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling AI service: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("AI service returned %s: %s", resp.Status, bytes.TrimSpace(snippet))
	}
	return resp, nil
}
