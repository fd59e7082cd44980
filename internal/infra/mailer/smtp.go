// internal/infra/mailer/smtp.go
package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hamiltra/net-reminder/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// Settings describe the SMTP account the notices are sent from.
type Settings struct {
	Host     string
	Port     int
	Username string // Also the envelope sender
	Password string
	From     string // From header
	ReplyTo  string // Optional
}

// SMTPTransport sends notices over implicit TLS with username/password auth.
type SMTPTransport struct {
	settings Settings
	logger   logrus.FieldLogger
	deliver  func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPTransport(settings Settings, logger logrus.FieldLogger) *SMTPTransport {
	t := &SMTPTransport{settings: settings, logger: logger}
	t.deliver = t.dialAndSend
	return t
}

func (t *SMTPTransport) Name() string {
	return "smtp"
}

// Send builds the multipart message and delivers it in one SMTP session.
func (t *SMTPTransport) Send(ctx context.Context, notice *notification.Notice, recipients []string) error {
	msg, err := t.BuildMessage(notice, recipients)
	if err != nil {
		return err
	}
	return t.deliver(ctx, msg)
}

// BuildMessage renders notice as an HTML message with inline attachments.
func (t *SMTPTransport) BuildMessage(notice *notification.Notice, recipients []string) (*mail.Msg, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("message has no recipients")
	}

	msg := mail.NewMsg()
	if err := msg.EnvelopeFrom(t.settings.Username); err != nil {
		return nil, fmt.Errorf("invalid envelope sender %q: %w", t.settings.Username, err)
	}
	if err := msg.From(t.settings.From); err != nil {
		return nil, fmt.Errorf("invalid From address %q: %w", t.settings.From, err)
	}
	if err := msg.To(recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipient list: %w", err)
	}
	if t.settings.ReplyTo != "" {
		if err := msg.ReplyTo(t.settings.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid Reply-To address %q: %w", t.settings.ReplyTo, err)
		}
	}
	msg.Subject(notice.Subject)
	msg.SetBodyString(mail.TypeTextHTML, notice.Body)

	for _, a := range notice.Attachments {
		if err := msg.EmbedReader(a.Name, bytes.NewReader(a.Data)); err != nil {
			return nil, fmt.Errorf("failed to embed %s: %w", a.Name, err)
		}
	}

	t.logger.Infof("Subject: %s", notice.Subject)
	t.logger.Infof("From: %s", t.settings.From)
	t.logger.Infof("To: %v", recipients)
	if t.settings.ReplyTo != "" {
		t.logger.Infof("Reply-to: %s", t.settings.ReplyTo)
	}
	return msg, nil
}

func (t *SMTPTransport) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(t.settings.Host,
		mail.WithPort(t.settings.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.settings.Username),
		mail.WithPassword(t.settings.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client for %s:%d: %w", t.settings.Host, t.settings.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send via %s:%d: %w", t.settings.Host, t.settings.Port, err)
	}
	return nil
}
