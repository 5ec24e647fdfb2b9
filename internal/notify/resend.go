package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends through the Resend API with a bearer token.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, m Message) error {
	params := &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{m.To},
		Subject: m.Subject,
		Text:    m.Text,
		Html:    m.HTML,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send to %s: %w", m.To, err)
	}
	return nil
}
