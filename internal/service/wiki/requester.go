package wiki

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/util"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

// Requester sends one MediaWiki Action API request and returns the raw JSON body.
type Requester interface {
	DoRequest(ctx context.Context, params url.Values) ([]byte, error)
	IsCircuitOpen() bool
}

// RequestObserver receives one call per HTTP attempt.
type RequestObserver interface {
	ObserveRequest(outcome string, duration time.Duration)
}

type APIClientConfig struct {
	BaseURL     string
	UserAgent   string
	HTTPClient  *http.Client
	Breaker     *util.CircuitBreaker
	Observer    RequestObserver
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}

// APIClient retries 429 and 5xx responses with exponential backoff and jitter and
// stops calling the API while its circuit breaker is open.
type APIClient struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	breaker     *util.CircuitBreaker
	observer    RequestObserver
	maxAttempts int
	baseDelay   time.Duration
	jitter      time.Duration
	logger      *zap.Logger
}

func NewAPIClient(cfg APIClientConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &APIClient{
		httpClient:  cfg.HTTPClient,
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		breaker:     cfg.Breaker,
		observer:    cfg.Observer,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		jitter:      cfg.Jitter,
		logger:      logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: constants.APIConfig.HTTPTimeout}
	}
	if c.baseURL == "" {
		c.baseURL = constants.APIConfig.WikipediaBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = constants.APIConfig.UserAgent
	}
	if c.breaker == nil {
		c.breaker = util.NewCircuitBreaker(
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger,
		)
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = constants.RetryConfig.MaxAttempts
	}
	if c.baseDelay <= 0 {
		c.baseDelay = constants.RetryConfig.BaseDelay
	}
	if c.jitter < 0 {
		c.jitter = 0
	}
	return c
}

func (c *APIClient) DoRequest(ctx context.Context, params url.Values) ([]byte, error) {
	if !c.breaker.CanExecute() {
		remaining := c.breaker.RetryAfter()
		c.logger.Warn("Circuit breaker is open", zap.Int64("retry_after_ms", remaining.Milliseconds()))
		return nil, errors.NewAPIError("Circuit breaker open", http.StatusServiceUnavailable, map[string]any{
			"retry_after_ms": remaining.Milliseconds(),
		})
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("format", "json")
	query.Set("formatversion", "2")
	reqURL := c.baseURL + "?" + query.Encode()

	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.observe("network_error", start)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = errors.NewAPIError("Request failed", 0, map[string]any{"action": params.Get("action")}).WithCause(err)
			c.breaker.RecordFailure()
			if !c.retry(ctx, attempt, err) {
				break
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			c.observe("read_error", start)
			lastErr = err
			if !c.retry(ctx, attempt, err) {
				break
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.observe(fmt.Sprintf("%dxx", resp.StatusCode/100), start)
			lastErr = errors.NewAPIError(fmt.Sprintf("Server error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
				"action": params.Get("action"),
			})
			c.breaker.RecordFailure()
			if !c.retry(ctx, attempt, lastErr) {
				break
			}
			continue
		}

		if resp.StatusCode >= 400 {
			c.observe("4xx", start)
			return nil, errors.NewAPIError(fmt.Sprintf("Client error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
				"action": params.Get("action"),
				"body":   util.TruncateString(string(body), 200),
			})
		}

		c.observe("ok", start)
		c.breaker.RecordSuccess()
		return body, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}

	return nil, fmt.Errorf("wiki request failed")
}

func (c *APIClient) IsCircuitOpen() bool {
	return !c.breaker.CanExecute()
}

// retry waits before the next attempt and reports whether there is one.
func (c *APIClient) retry(ctx context.Context, attempt int, cause error) bool {
	if attempt >= c.maxAttempts-1 || !c.breaker.CanExecute() {
		return false
	}
	delay := c.computeDelay(attempt)
	c.logger.Warn("Request failed, retrying",
		zap.Error(cause),
		zap.Int("attempt", attempt+1),
		zap.Duration("delay", delay),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *APIClient) computeDelay(attempt int) time.Duration {
	base := c.baseDelay * time.Duration(math.Pow(2, float64(attempt)))
	jitter := time.Duration(rand.Float64() * float64(c.jitter))
	return base + jitter
}

func (c *APIClient) observe(outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(outcome, time.Since(start))
	}
}
