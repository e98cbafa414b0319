// Package uphere is a rate-limited client for the uphere.space satellite
// tracking API, plus the normalizer that turns its heterogeneous response
// shapes into canonical orbital records.
package uphere

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/slimtomatillo/ephemeris/internal/metrics"
)

const (
	defaultRequestTimeout = 30 * time.Second

	// retryBudget is the total number of attempts (first try included) made
	// for a request that keeps hitting the quota.
	retryBudget = 3

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 10 << 20
)

// Config holds client construction parameters. Credentials are the two
// header values the gateway requires on every call.
type Config struct {
	APIKey  string
	APIHost string

	// BaseURL overrides the https://<APIHost> default. Used by tests.
	BaseURL string

	// RequestsPerSecond is the pacing limit; 1/s matches the free tier.
	RequestsPerSecond float64

	Timeout time.Duration
}

// Client issues paced, retrying requests to the upstream API. A single
// Client serializes its outbound calls; it is safe to share between
// goroutines, which then queue on the pacing discipline.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
	logger     *slog.Logger

	// callMu serializes outbound requests so no two calls are in flight
	// closer together than the minimum interval.
	callMu sync.Mutex

	// mu guards the pacing state below.
	mu           sync.Mutex
	limiter      *rate.Limiter
	minInterval  time.Duration
	lastRequest  time.Time
	requestCount uint64

	// Injected clock and sleep, replaceable in tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Client. Zero-value config fields fall back to the free-tier
// defaults (1 request/second, 30 second timeout).
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.APIHost
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:      logger,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		minInterval: time.Duration(float64(time.Second) / cfg.RequestsPerSecond),
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// SetRateLimit reconfigures the pacing to allow requestsPerSecond outbound
// calls. Returns a ConfigError when the argument is not positive.
func (c *Client) SetRateLimit(requestsPerSecond float64) error {
	if requestsPerSecond <= 0 {
		return &ConfigError{
			Field:  "requests per second",
			Reason: "must be greater than 0",
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.minInterval = time.Duration(float64(time.Second) / requestsPerSecond)
	c.limiter.SetLimitAt(c.now(), rate.Limit(requestsPerSecond))
	return nil
}

// Stats describes the client's request history and pacing state.
type Stats struct {
	RequestCount      uint64        `json:"request_count"`
	TimeSinceLast     time.Duration `json:"time_since_last_request"`
	MinInterval       time.Duration `json:"min_request_interval"`
	RequestsPerSecond float64       `json:"requests_per_second"`
	CanCallNow        bool          `json:"can_call_now"`
}

// Stats returns a snapshot of the request counters and pacing state.
func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var since time.Duration
	if !c.lastRequest.IsZero() {
		since = c.now().Sub(c.lastRequest)
	}

	return Stats{
		RequestCount:      c.requestCount,
		TimeSinceLast:     since,
		MinInterval:       c.minInterval,
		RequestsPerSecond: float64(time.Second) / float64(c.minInterval),
		CanCallNow:        c.lastRequest.IsZero() || since >= c.minInterval,
	}
}

// Call performs a paced GET against endpoint with the given query parameters
// and returns the decoded JSON body as-is (list- or object-shaped depending
// on the endpoint). Quota responses are retried with linear backoff; all
// other failures surface immediately as a *RemoteError.
func (c *Client) Call(ctx context.Context, endpoint string, params url.Values) (any, error) {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	c.waitTurn()

	var lastErr error
	for attempt := 0; attempt < retryBudget; attempt++ {
		if attempt > 0 {
			// Linear backoff: one interval before the second attempt, two
			// before the third.
			backoff := time.Duration(attempt) * c.interval()
			c.logger.Warn("quota exceeded, retrying",
				"endpoint", endpoint,
				"attempt", attempt+1,
				"backoff", backoff,
			)
			metrics.IncUpstreamRetry()
			c.sleep(backoff)
		}

		payload, err := c.do(ctx, endpoint, params)
		if err == nil {
			return payload, nil
		}

		if IsKind(err, KindRateLimited) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, &RemoteError{
		Kind:     KindRateLimited,
		Endpoint: endpoint,
		Status:   http.StatusTooManyRequests,
		Err:      lastErr,
		Message: fmt.Sprintf(
			"quota exceeded on %s after %d attempts: the current subscription tier allows %.1f requests/second; wait before issuing more requests",
			endpoint, retryBudget, float64(time.Second)/float64(c.interval()),
		),
	}
}

// waitTurn blocks until the pacing discipline permits the next call.
func (c *Client) waitTurn() {
	c.mu.Lock()
	now := c.now()
	delay := c.limiter.ReserveN(now, 1).DelayFrom(now)
	c.mu.Unlock()

	if delay > 0 {
		metrics.AddRateLimitWait(delay.Seconds())
		c.sleep(delay)
	}
}

func (c *Client) interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minInterval
}

// do performs a single request attempt and classifies the outcome.
func (c *Client) do(ctx context.Context, endpoint string, params url.Values) (any, error) {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("Content-Type", "application/json")

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstreamRequest(endpoint, "error", c.now().Sub(start).Seconds())
		return nil, classifyTransportError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.ObserveUpstreamRequest(endpoint, "error", c.now().Sub(start).Seconds())
		return nil, &RemoteError{Kind: KindTransport, Endpoint: endpoint, Err: err}
	}

	metrics.ObserveUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), c.now().Sub(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(endpoint, resp.StatusCode, body)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", endpoint, err)
	}

	c.mu.Lock()
	c.lastRequest = c.now()
	c.requestCount++
	c.mu.Unlock()

	return payload, nil
}

func (c *Client) statusError(endpoint string, status int, body []byte) *RemoteError {
	switch status {
	case http.StatusTooManyRequests:
		return &RemoteError{
			Kind:     KindRateLimited,
			Endpoint: endpoint,
			Status:   status,
			Body:     string(body),
		}
	case http.StatusUnauthorized:
		return &RemoteError{
			Kind:     KindUnauthorized,
			Endpoint: endpoint,
			Status:   status,
			Message:  fmt.Sprintf("authentication failed on %s: check the API key and host headers", endpoint),
		}
	case http.StatusNotFound:
		return &RemoteError{
			Kind:     KindNotFound,
			Endpoint: endpoint,
			Status:   status,
			Message: fmt.Sprintf(
				"endpoint %s not found: the path may be wrong, or the current subscription tier may not include it",
				endpoint,
			),
		}
	default:
		return &RemoteError{
			Kind:     KindHTTP,
			Endpoint: endpoint,
			Status:   status,
			Body:     string(body),
		}
	}
}

// classifyTransportError distinguishes timeouts, which are not retried, from
// other transport failures.
func classifyTransportError(endpoint string, err error) *RemoteError {
	var ue *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ue) && ue.Timeout()) {
		return &RemoteError{Kind: KindTimeout, Endpoint: endpoint, Err: err}
	}
	return &RemoteError{Kind: KindTransport, Endpoint: endpoint, Err: err}
}
