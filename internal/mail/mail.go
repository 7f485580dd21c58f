// AngelaMos | 2026
// mail.go

// Package mail delivers transactional email through an external HTTP API.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/andgroupco/andoffer/internal/config"
)

var (
	ErrNotConfigured = errors.New("email service is not configured")
	ErrDelivery      = errors.New("email delivery failed")
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds the sender selected by cfg.Driver.
func NewSender(cfg config.MailConfig, logger *slog.Logger) (Sender, error) {
	switch cfg.Driver {
	case config.MailDriverHTTP:
		return NewHTTPSender(cfg)
	case config.MailDriverLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("mail driver %q: %w", cfg.Driver, ErrNotConfigured)
	}
}
