// Package mailer relays contact form submissions over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/helpinghands/backend/internal/model"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mailer: smtp credentials not configured")

// Config holds the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	// ContactEmail receives contact form mail. Falls back to User.
	ContactEmail string
}

// Mailer sends email through an authenticated SMTP relay using STARTTLS
// when the server offers it.
type Mailer struct {
	cfg  Config
	send func(ctx context.Context, msg *mail.Msg) error
}

// New creates a Mailer. Missing credentials are reported per send, not here,
// so the server still starts without SMTP.
func New(cfg Config) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

// Configured reports whether both SMTP user and password are set.
func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Password != ""
}

func (m *Mailer) recipient() string {
	if m.cfg.ContactEmail != "" {
		return m.cfg.ContactEmail
	}
	return m.cfg.User
}

// SendContact renders and sends a contact form submission. It returns the
// Message-ID of the sent mail.
func (m *Mailer) SendContact(ctx context.Context, msg model.ContactMessage) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	return m.Send(ctx, BuildContactEmail(msg, m.recipient()))
}

// Send delivers e and returns its Message-ID.
func (m *Mailer) Send(ctx context.Context, e Email) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	msg, err := m.compose(e)
	if err != nil {
		return "", err
	}
	if err := m.send(ctx, msg); err != nil {
		return "", fmt.Errorf("mailer: send: %w", err)
	}
	return msg.GetMessageID(), nil
}

func (m *Mailer) compose(e Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(e.FromName, m.cfg.User); err != nil {
		return nil, fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.To(e.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	if e.ReplyTo != "" {
		if err := msg.ReplyTo(e.ReplyTo); err != nil {
			return nil, fmt.Errorf("mailer: reply-to: %w", err)
		}
	}
	msg.Subject(e.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, e.HTMLBody)
	}
	return msg, nil
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
