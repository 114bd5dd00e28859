package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TokenSource supplies the session bearer token, if any
type TokenSource interface {
	Token() (string, bool)
}

// Client calls the booking backend. It never retries.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewClient creates a backend HTTP client. The transport has no global timeout;
// each call site picks its own with WithTimeout.
func NewClient(baseURL string, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		logger:     logger,
		tracer:     otel.Tracer("github.com/realahmed45/future-bali-frontend/internal/backend"),
	}
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CallOption tunes a single call
type CallOption func(*callOptions)

type callOptions struct {
	timeout time.Duration
}

// WithTimeout bounds one call. Zero or negative means rely on the transport.
func WithTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// APIError is the rejected outcome of a backend call
type APIError struct {
	StatusCode int    // zero when no response was received
	Message    string // server-supplied message, may be empty
	Timeout    bool
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Timeout:
		return "backend request timed out"
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("backend request failed: %v", e.Err)
	default:
		return "backend request failed"
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is a timed-out backend call
func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Timeout
}

// IsUnauthorized reports whether the backend rejected the bearer token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// MessageOr returns the server-supplied message carried by err, or fallback
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// envelope is the common response shape of the backend
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out interface{}, opts []CallOption) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}
	contentType := ""
	if in != nil {
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, contentType, body, out, opts)
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out interface{}, opts []CallOption) error {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "backend."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("backend.path", path),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &APIError{Err: err, Timeout: isTimeoutErr(err)}
		c.logger.Warn("Backend request failed", zap.String("op", op), zap.String("path", path), zap.Bool("timeout", apiErr.Timeout), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Err: err, Timeout: isTimeoutErr(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		c.logger.Warn("Backend returned error status", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("message", env.Message))
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", op, err)
		}
	}
	return nil
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
