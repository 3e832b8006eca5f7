// Package notify sends outbound email about marketplace events.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"ambientefest/internal/config"
	"ambientefest/internal/model"
)

// Notifier tells the back office about new contact messages.
type Notifier interface {
	ContactReceived(ctx context.Context, msg model.ContactMessage) error
}

// New returns an SMTP notifier, or a no-op one when SMTP is not configured.
func New(cfg config.SMTPConfig) (Notifier, error) {
	if cfg.Host == "" || cfg.NotifyTo == "" {
		return Nop{}, nil
	}
	return NewSMTP(cfg)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) ContactReceived(context.Context, model.ContactMessage) error { return nil }

// SMTP delivers notifications through an SMTP relay.
type SMTP struct {
	from string
	to   string
	send func(ctx context.Context, m *mail.Msg) error
}

func NewSMTP(cfg config.SMTPConfig) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	send := func(ctx context.Context, m *mail.Msg) error {
		return client.DialAndSendWithContext(ctx, m)
	}
	return &SMTP{from: from, to: cfg.NotifyTo, send: send}, nil
}

func (s *SMTP) ContactReceived(ctx context.Context, cm model.ContactMessage) error {
	msg, err := contactMessage(s.from, s.to, cm)
	if err != nil {
		return err
	}
	if err := s.send(ctx, msg); err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	return nil
}

func contactMessage(from, to string, cm model.ContactMessage) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := msg.ReplyTo(cm.Email); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	msg.Subject("Nuevo mensaje de contacto de " + cm.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", cm.Name)
	fmt.Fprintf(&b, "Email: %s\n", cm.Email)
	if cm.ID > 0 {
		fmt.Fprintf(&b, "ID: %d\n", cm.ID)
	}
	b.WriteString("\n")
	b.WriteString(cm.Message)
	msg.SetBodyString(mail.TypeTextPlain, b.String())
	return msg, nil
}
