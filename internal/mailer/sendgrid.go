package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridSender struct {
	from mail.Address
	send func(ctx context.Context, m *sgmail.SGMailV3) (*rest.Response, error)
}

func NewSendGridSender(apiKey string, from mail.Address) *SendGridSender {
	client := sendgrid.NewSendClient(apiKey)
	return &SendGridSender{from: from, send: client.SendWithContext}
}

func (s *SendGridSender) Name() string { return "sendgrid" }

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	from := sgmail.NewEmail(s.from.Name, s.from.Address)
	to := sgmail.NewEmail(msg.ToName, msg.To)
	resp, err := s.send(ctx, sgmail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
