package usecase

import (
	"go-staffing-backend/pkg/email"
	"go-staffing-backend/pkg/logger"
)

// Notifier delivers best-effort workflow notifications. Implementations
// must never block or fail a transition.
type Notifier interface {
	Notify(subject string, lines ...string)
}

type emailNotifier struct {
	svc       *email.Service
	recipient string
}

// NewEmailNotifier wraps the email service for workflow notifications to
// the operations inbox. Falls back to a no-op when unconfigured.
func NewEmailNotifier(svc *email.Service, recipient string) Notifier {
	if svc == nil || !svc.IsConfigured() || recipient == "" {
		return noopNotifier{}
	}
	return &emailNotifier{svc: svc, recipient: recipient}
}

func (n *emailNotifier) Notify(subject string, lines ...string) {
	err := n.svc.Send(email.NotificationData{
		Recipient: n.recipient,
		Subject:   subject,
		Headline:  subject,
		Lines:     lines,
	})
	if err != nil {
		logger.Log.Warn("notification email failed", "subject", subject, "error", err)
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, ...string) {}
