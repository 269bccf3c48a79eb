package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/linskybing/robolab-go/internal/config"
)

// Message is one outbound email as handed to a backend.
type Message struct {
	ID      string
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a message through one provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// New returns the backend selected by EMAIL_PROVIDER.
func New(cfg config.MailConfig) (Sender, error) {
	from := mail.Address{Name: cfg.FromName, Address: cfg.From}
	switch cfg.Provider {
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp not configured (SMTP_HOST)")
		}
		return NewSMTPSender(cfg, from), nil
	case "sendgrid":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("sendgrid requires EMAIL_API_KEY")
		}
		return NewSendGridSender(cfg.APIKey, from), nil
	case "resend":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("resend requires EMAIL_API_KEY")
		}
		return NewResendSender(cfg.APIKey, from), nil
	case "log", "":
		return NewLogSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
