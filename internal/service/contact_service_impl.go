package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/helpinghands/backend/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	sender ContactSender
}

// NewContactService creates a ContactService that relays through sender.
func NewContactService(sender ContactSender) ContactService {
	return &contactServiceImpl{sender: sender}
}

// Send checks required fields and the email shape before handing the message
// to the sender.
func (s *contactServiceImpl) Send(ctx context.Context, msg model.ContactMessage) (string, error) {
	msg.Email = strings.TrimSpace(msg.Email)
	if msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		return "", invalid("Email and message are required fields.")
	}
	if !emailPattern.MatchString(msg.Email) {
		return "", invalid("Please provide a valid email address.")
	}

	id, err := s.sender.SendContact(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("send contact email: %w", err)
	}
	slog.Info("contact email sent", "message_id", id)
	return id, nil
}
