// AngelaMos | 2026
// notifier.go

package mail

import (
	"context"
	"time"
)

// Notifier renders and sends the account emails used by the auth flows.
type Notifier struct {
	sender    Sender
	templates *Templates
}

func NewNotifier(sender Sender, templates *Templates) *Notifier {
	return &Notifier{sender: sender, templates: templates}
}

func (n *Notifier) SendVerification(
	ctx context.Context,
	to, name, code string,
	ttl time.Duration,
) error {
	msg, err := n.templates.Verification(to, name, code, ttl)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, msg)
}

func (n *Notifier) SendWelcome(ctx context.Context, to, name string) error {
	msg, err := n.templates.Welcome(to, name)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, msg)
}
