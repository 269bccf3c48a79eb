package mailer

import (
	"context"
	"net/mail"

	"github.com/resend/resend-go/v2"
)

type ResendSender struct {
	from string
	send func(ctx context.Context, req *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

func NewResendSender(apiKey string, from mail.Address) *ResendSender {
	client := resend.NewClient(apiKey)
	return &ResendSender{from: from.String(), send: client.Emails.SendWithContext}
}

func (s *ResendSender) Name() string { return "resend" }

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	to := msg.To
	if msg.ToName != "" {
		to = (&mail.Address{Name: msg.ToName, Address: msg.To}).String()
	}
	_, err := s.send(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	return err
}
