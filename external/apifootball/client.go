// Package apifootball is the resilient client for the API-Football HTTP API.
// Every failure leaving this package is normalized to usecase.APIError or, for
// payload contract violations, usecase.DataIntegrityError.
package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/pitchguess/lineup-trivia/internal/platform/logging"
	"github.com/pitchguess/lineup-trivia/internal/platform/resilience"
	"github.com/pitchguess/lineup-trivia/internal/usecase"
)

const (
	defaultBaseURL    = "https://v3.football.api-sports.io"
	defaultAPIHost    = "v3.football.api-sports.io"
	defaultMaxRetries = 3
	baseBackoff       = time.Second
	maxBodyBytes      = 6 << 20
)

const (
	msgRateLimited  = "rate limited by the football data provider"
	msgServerError  = "the football data provider is having problems"
	msgNetworkError = "network error reaching the football data provider"
	msgCircuitOpen  = "football data provider is temporarily unavailable"
)

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIHost           string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiHost        string
	apiKey         string
	maxRetries     int
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool

	// sleep suspends between retry attempts; swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiHost := strings.TrimSpace(cfg.APIHost)
	if apiHost == "" {
		apiHost = defaultAPIHost
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiHost:        apiHost,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxRetries,
		limiter:        limiter,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		sleep:          sleepContext,
	}
}

// getItems runs one logical GET through the retry pipeline, unwraps the
// response envelope, and decodes its items into target.
func (c *Client) getItems(ctx context.Context, path string, query url.Values, target any) error {
	raw, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	if msgs := envelopeErrors(env.Errors); len(msgs) > 0 {
		return &usecase.APIError{
			StatusCode: http.StatusOK,
			Message:    strings.Join(msgs, "; "),
			Retryable:  false,
		}
	}
	if len(env.Response) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(env.Response, target); err != nil {
		return crerr.Wrap(err, "decode response items")
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State())
			return nil, &usecase.APIError{
				StatusCode: usecase.StatusNoResponse,
				Message:    msgCircuitOpen,
				Retryable:  true,
			}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.execute(ctx, fullURL)
	if c.circuitEnabled {
		if apiErr, ok := usecase.AsAPIError(err); ok && apiErr.Retryable {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return raw, err
}

// execute drives the retry loop: retryable failures (429, 5xx, transport)
// back off and try again up to the retry cap, everything else fails fast.
func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr *usecase.APIError
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("x-rapidapi-host", c.apiHost)
		req.Header.Set("x-rapidapi-key", c.apiKey)
		req.Header.Set("accept", "application/json")

		var delay time.Duration
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = &usecase.APIError{
				StatusCode: usecase.StatusNoResponse,
				Message:    msgNetworkError,
				Retryable:  true,
			}
			delay = backoffDelay(attempt)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = &usecase.APIError{
					StatusCode: usecase.StatusNoResponse,
					Message:    msgNetworkError,
					Retryable:  true,
				}
				delay = backoffDelay(attempt)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusTooManyRequests:
				lastErr = &usecase.APIError{
					StatusCode: resp.StatusCode,
					Message:    msgRateLimited,
					Retryable:  true,
				}
				delay = retryAfterDelay(resp.Header.Get("Retry-After"), attempt)
			case resp.StatusCode >= 500:
				lastErr = &usecase.APIError{
					StatusCode: resp.StatusCode,
					Message:    msgServerError,
					Retryable:  true,
				}
				delay = backoffDelay(attempt)
			default:
				return nil, &usecase.APIError{
					StatusCode: resp.StatusCode,
					Message:    clientErrorMessage(resp.StatusCode),
					Retryable:  false,
				}
			}
		}

		if attempt == c.maxRetries {
			break
		}

		c.logger.WarnContext(ctx, "api-football request retrying",
			"url", fullURL,
			"attempt", attempt+1,
			"status", lastErr.StatusCode,
			"delay", delay,
		)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		lastErr = &usecase.APIError{
			StatusCode: usecase.StatusNoResponse,
			Message:    msgNetworkError,
			Retryable:  true,
		}
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// backoffDelay doubles per attempt: 1s, 2s, 4s, 8s.
func backoffDelay(attempt int) time.Duration {
	return baseBackoff << attempt
}

// retryAfterDelay honors a server-provided retry hint in seconds, falling
// back to exponential backoff when absent or unparseable.
func retryAfterDelay(header string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return backoffDelay(attempt)
}

func clientErrorMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid request sent to the football data provider"
	case http.StatusUnauthorized:
		return "authentication with the football data provider failed; check the API key"
	case http.StatusForbidden:
		return "access to this football data resource is forbidden"
	case http.StatusNotFound:
		return "football data resource not found"
	default:
		return fmt.Sprintf("football data request failed with status %d", status)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
