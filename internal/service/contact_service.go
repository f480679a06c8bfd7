package service

import (
	"context"

	"github.com/helpinghands/backend/internal/model"
)

// ContactSender delivers a contact message and returns its Message-ID.
type ContactSender interface {
	SendContact(ctx context.Context, msg model.ContactMessage) (string, error)
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Send validates msg and relays it by email. Nothing is stored.
	Send(ctx context.Context, msg model.ContactMessage) (messageID string, err error)
}
