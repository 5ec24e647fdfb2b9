package notify

import (
	"context"

	"github.com/welcomedesk/visitors/internal/config"
)

// Message is one outbound plain-text email with an optional HTML part.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a Message through an external transport.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

const resendDefaultFrom = "Welcome Desk <onboarding@resend.dev>"

// FromConfig picks the transport: SMTP when user and password are set,
// otherwise Resend when an API key is set. It returns a nil Sender when
// neither is configured.
func FromConfig(cfg config.EmailConfig) (Sender, string) {
	from := cfg.FromAddress()
	switch {
	case cfg.SMTPConfigured():
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass), from
	case cfg.ResendAPIKey != "":
		if from == "" {
			from = resendDefaultFrom
		}
		return NewResendSender(cfg.ResendAPIKey), from
	}
	return nil, from
}
