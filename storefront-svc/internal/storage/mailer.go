package storage

import (
	"context"
	"fmt"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string
}

func (m *SMTPMailer) Message(email domain.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.FromName, m.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", m.From, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	return msg, nil
}

// Send makes a single delivery attempt bounded by ctx.
func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	msg, err := m.Message(email)
	if err != nil {
		return err
	}

	opts := []mail.Option{mail.WithPort(m.Port)}
	if m.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if m.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.Username),
			mail.WithPassword(m.Password),
		)
	}

	client, err := mail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	return nil
}
