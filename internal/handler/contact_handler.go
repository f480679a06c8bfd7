package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helpinghands/backend/internal/mailer"
	"github.com/helpinghands/backend/internal/model"
	"github.com/helpinghands/backend/internal/service"
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
// email and message are required; the rest is optional.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg model.ContactMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		writeError(w, http.StatusBadRequest, "Email and message are required fields.")
		return
	}

	id, err := h.contactService.Send(r.Context(), msg)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, mailer.ErrNotConfigured):
			slog.Error("SMTP credentials not configured")
			writeError(w, http.StatusInternalServerError, "Email service is not configured. Please contact the administrator.")
		default:
			slog.Error("contact email failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to send your message. Please try again later or contact us directly.")
		}
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{
		Success:   true,
		Message:   "Thank you for your message! We will get back to you soon.",
		MessageID: id,
	})
}
