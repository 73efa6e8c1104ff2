// Package email sends status-change notifications over SMTP.
package email

import (
	"context"
	"fmt"

	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/signing"

	"gopkg.in/gomail.v2"
)

// SMTPNotifier implements ports.Notifier using gomail. Each message carries
// a signed tracking link so the customer can open the order page without
// logging in.
type SMTPNotifier struct {
	dialer      *gomail.Dialer
	from        string
	trackingURL string
	signer      *signing.TrackingLinkSigner
}

// NewSMTPNotifier creates a notifier. trackingURL is the public base URL of
// the tracking endpoint, e.g. "https://orders.example.com/track".
func NewSMTPNotifier(
	host string,
	port int,
	username, password string,
	from string,
	trackingURL string,
	signer *signing.TrackingLinkSigner,
) *SMTPNotifier {
	return &SMTPNotifier{
		dialer:      gomail.NewDialer(host, port, username, password),
		from:        from,
		trackingURL: trackingURL,
		signer:      signer,
	}
}

// SendStatusChanged emails the customer about the new status. The context is
// accepted for interface symmetry; gomail's dialer does not support
// cancellation mid-send.
func (n *SMTPNotifier) SendStatusChanged(_ context.Context, notification *ports.Notification) error {
	link, err := n.signer.Sign(notification.OrderID.String(), notification.TrackingToken)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order %s: %s",
		notification.OrderNumber, notification.NewStatus.Label())

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"Your order %s has moved from %q to %q.\n\n"+
			"%s\n\n"+
			"Track your order: %s?link=%s\n",
		notification.OrderNumber,
		notification.OldStatus.Label(),
		notification.NewStatus.Label(),
		notification.NewStatus.Description(),
		n.trackingURL,
		link,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", notification.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return n.dialer.DialAndSend(m)
}
