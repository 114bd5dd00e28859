package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Template identifies one email template and the account allowed to send it
type Template struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Client sends templated emails through the EmailJS REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	tracer     trace.Tracer
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
		tracer:     otel.Tracer("github.com/realahmed45/future-bali-frontend/internal/emailjs"),
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send renders tmpl with params and delivers it
func (c *Client) Send(ctx context.Context, tmpl Template, params map[string]string) error {
	ctx, span := c.tracer.Start(ctx, "emailjs.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	raw, err := json.Marshal(sendRequest{
		ServiceID:      tmpl.ServiceID,
		TemplateID:     tmpl.TemplateID,
		UserID:         tmpl.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1.0/email/send", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		span.SetStatus(codes.Error, resp.Status)
		c.logger.Warn("EmailJS rejected send",
			zap.String("template_id", tmpl.TemplateID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.logger.Debug("Email sent", zap.String("template_id", tmpl.TemplateID))
	return nil
}
