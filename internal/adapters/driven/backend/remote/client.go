// Package remote provides a search backend adapter speaking JSON over HTTP.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/backend/wire"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchBackend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL          = "http://localhost:8088"
	DefaultTimeout          = 30 * time.Second
	DefaultFailureThreshold = 5
	DefaultOpenTimeout      = 30 * time.Second
)

// maxErrorBody bounds how much of an error response is kept for messages.
const maxErrorBody = 512

// Config holds configuration for the HTTP search backend.
type Config struct {
	// BaseURL is the search service root (default: http://localhost:8088).
	BaseURL string

	// Timeout bounds each request (default: 30s).
	Timeout time.Duration

	// RateLimit throttles average-rating lookups.
	RateLimit RateLimitConfig

	// FailureThreshold is the number of consecutive failures that opens the
	// circuit (default: 5).
	FailureThreshold uint32

	// OpenTimeout is how long the circuit stays open before probing (default: 30s).
	OpenTimeout time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Client is a driven.SearchBackend over HTTP. Every call passes through a
// circuit breaker; average lookups are additionally rate limited. Nothing is
// retried.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *RateLimiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// statusError is a non-2xx answer.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("status %d", e.code)
	}
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

// NewClient creates a new HTTP search backend client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultOpenTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "search-backend",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Rejected requests say nothing about backend health.
		IsSuccessful: func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.code < http.StatusInternalServerError && se.code != http.StatusTooManyRequests
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RateLimit),
		breaker: breaker,
	}
}

// BreakerState reports the circuit breaker state ("closed", "open", "half-open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Search posts the query and returns the ordered result items.
func (c *Client) Search(ctx context.Context, q domain.Query) ([]domain.ResultItem, error) {
	req, err := wire.NewSearchRequest(q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var items []domain.ResultItem
	if err := c.call(ctx, http.MethodPost, wire.PathSearch, nil, req, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ResultItem{}
	}
	return items, nil
}

// AverageRatings fetches the mean star rating of each identifier.
// Identifiers the backend omits are omitted from the result.
func (c *Client) AverageRatings(ctx context.Context, ids ...domain.DocID) (map[domain.DocID]float64, error) {
	if len(ids) == 0 {
		return map[domain.DocID]float64{}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: waiting for rate limiter: %w", domain.ErrTransportFailure, err)
	}

	params := url.Values{}
	for _, id := range ids {
		params.Add(domain.DocIDParam, id.String())
	}

	var resp wire.AveragesResponse
	if err := c.call(ctx, http.MethodGet, wire.PathRatings, params, nil, &resp); err != nil {
		return nil, err
	}

	averages := make(map[domain.DocID]float64, len(resp))
	for id, avg := range resp {
		averages[domain.DocID(id)] = avg
	}
	return averages, nil
}

// SubmitRating posts a single star rating.
func (c *Client) SubmitRating(ctx context.Context, id domain.DocID, stars int) (domain.RatingReceipt, error) {
	var receipt wire.RatingResponse
	req := wire.RatingRequest{DocID: id, Stars: stars}
	if err := c.call(ctx, http.MethodPost, wire.PathRatings, nil, req, &receipt); err != nil {
		return domain.RatingReceipt{}, err
	}
	return receipt, nil
}

// SubmitRelevanceFeedback posts a feedback batch and returns the re-ranked items.
func (c *Client) SubmitRelevanceFeedback(
	ctx context.Context, batch domain.RelevanceFeedbackBatch,
) ([]domain.ResultItem, error) {
	var items []domain.ResultItem
	if err := c.call(ctx, http.MethodPost, wire.PathFeedback, nil, wire.FeedbackRequest(batch), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ResultItem{}
	}
	return items, nil
}

// call performs one request through the breaker and decodes the answer into out.
// Every failure is reported as domain.ErrTransportFailure.
func (c *Client) call(ctx context.Context, method, path string, params url.Values, in, out any) error {
	logger.Debug("%s %s", method, path)

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, params, in)
	})
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrTransportFailure, method, path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %w", domain.ErrTransportFailure, method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in any) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode, body: truncate(string(data), maxErrorBody)}
	}
	return data, nil
}

func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
