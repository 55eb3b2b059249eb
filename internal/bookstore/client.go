// Package bookstore is the HTTP client of the remote bookstore API.
package bookstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/model"
)

const (
	DefaultBaseURL = "http://localhost:5400/api"

	maxResponseBytes = 8 << 20
	maxMessageLength = 512
)

// Recorder observes bookstore calls.
type Recorder interface {
	ObserveRemoteCall(operation, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRemoteCall(string, string, time.Duration) {}

// Client calls the bookstore API. Every call runs under the caller's context
// and is paced by an optional token bucket.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    Recorder
	logger     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit paces outbound calls to rps requests per second. Zero rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRecorder sets the recorder for call metrics.
func WithRecorder(rec Recorder) Option {
	return func(c *Client) {
		c.metrics = rec
	}
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, logger *logger.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		metrics:    nopRecorder{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one request.
type call struct {
	operation string
	method    string
	path      string
	bearer    string
	// payload is sent as JSON unless body is set.
	payload     any
	body        io.Reader
	contentType string
	// mutation adds an X-Request-ID header.
	mutation bool
	// conflict maps 409 to RemoteConflict instead of RemoteMutationFailed.
	conflict bool
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	started := time.Now()
	outcome := "failed"
	defer func() {
		c.metrics.ObserveRemoteCall(cl.operation, outcome, time.Since(started))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			outcome = "cancelled"
			return &model.RemoteError{
				Kind:      model.RemoteMutationFailed,
				Operation: cl.operation,
				Message:   model.DefaultRemoteMessage,
				Err:       err,
			}
		}
	}

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", cl.operation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "transport_error"
		c.logger.Error("Bookstore client: request failed",
			"operation", cl.operation,
			"error", err.Error())
		return &model.RemoteError{
			Kind:      model.RemoteMutationFailed,
			Operation: cl.operation,
			Message:   model.DefaultRemoteMessage,
			Err:       err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		outcome = "transport_error"
		return &model.RemoteError{
			Kind:       model.RemoteMutationFailed,
			Operation:  cl.operation,
			StatusCode: resp.StatusCode,
			Message:    model.DefaultRemoteMessage,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &model.RemoteError{
			Kind:       model.RemoteMutationFailed,
			Operation:  cl.operation,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body),
		}
		if cl.conflict && resp.StatusCode == http.StatusConflict {
			remoteErr.Kind = model.RemoteConflict
			outcome = "conflict"
			c.logger.Debug("Bookstore client: conflict",
				"operation", cl.operation)
			return remoteErr
		}
		c.logger.Warn("Bookstore client: request rejected",
			"operation", cl.operation,
			"status", resp.StatusCode,
			"message", remoteErr.Message)
		return remoteErr
	}

	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			outcome = "bad_response"
			c.logger.Error("Bookstore client: failed to decode response",
				"operation", cl.operation,
				"error", err.Error())
			return &model.RemoteError{
				Kind:       model.RemoteMutationFailed,
				Operation:  cl.operation,
				StatusCode: resp.StatusCode,
				Message:    "unexpected response from bookstore",
				Err:        err,
			}
		}
	}

	outcome = "ok"
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	body := cl.body
	contentType := cl.contentType
	if body == nil && cl.payload != nil {
		data, err := json.Marshal(cl.payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+"/"+cl.path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if cl.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+cl.bearer)
	}
	if cl.mutation {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	return req, nil
}

// extractMessage prefers a JSON {"message"} field, then the trimmed body text.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return model.DefaultRemoteMessage
	}
	if len(text) > maxMessageLength {
		text = text[:maxMessageLength]
	}
	return text
}

var errMissingField = errors.New("response is missing a required field")
