package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

var ErrDisabled = errors.New("smtp is not configured")

const minDialTimeout = time.Second

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.From != ""
}

// SendPasswordReset dials the relay for each message; ctx carries the send deadline.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	if !m.Enabled() {
		return ErrDisabled
	}

	msg, err := m.resetMessage(to, resetLink)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if deadline, ok := ctx.Deadline(); ok {
		timeout := time.Until(deadline)
		if timeout < minDialTimeout {
			timeout = minDialTimeout
		}
		opts = append(opts, mail.WithTimeout(timeout))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) resetMessage(to, resetLink string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Restablecer contraseña")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Recibimos un pedido para restablecer tu contraseña.\n\nAbrí este enlace dentro de la próxima hora:\n%s\n\nSi no lo pediste, ignorá este mensaje.\n",
		resetLink,
	))
	return msg, nil
}
