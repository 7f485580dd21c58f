// AngelaMos | 2026
// http.go

package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/andgroupco/andoffer/internal/config"
)

var tracer = otel.Tracer("github.com/andgroupco/andoffer/internal/mail")

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HTTPSender posts messages to {base_url}/emails. Failures are returned to
// the caller as is, without retries.
type HTTPSender struct {
	client *resty.Client
	from   string
}

func NewHTTPSender(cfg config.MailConfig) (*HTTPSender, error) {
	if cfg.BaseURL == "" || config.IsPlaceholderSecret(cfg.APIKey) {
		return nil, ErrNotConfigured
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey).
		SetRetryCount(0)

	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}

	return &HTTPSender{client: client, from: from}, nil
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	ctx, span := tracer.Start(ctx, "mail.Send")
	defer span.End()

	span.SetAttributes(attribute.String("mail.subject", msg.Subject))

	var apiErr errorResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(sendRequest{
			To:      msg.To,
			From:    s.from,
			Subject: msg.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		}).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("send email: %w: %w", ErrDelivery, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if resp.IsError() {
		detail := apiErr.Message
		if detail == "" {
			detail = apiErr.Error
		}
		span.SetStatus(codes.Error, resp.Status())
		return fmt.Errorf(
			"send email: %w: status %d %s",
			ErrDelivery,
			resp.StatusCode(),
			detail,
		)
	}

	return nil
}
