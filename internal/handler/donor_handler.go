package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/helpinghands/backend/internal/service"
	pkgstripe "github.com/helpinghands/backend/pkg/stripe"
)

const donorNotFound = "Donor not found"

// DonorHandler serves /api/donor.
type DonorHandler struct {
	submissions service.SubmissionService
	payments    service.PaymentService
}

// NewDonorHandler creates a DonorHandler.
func NewDonorHandler(submissions service.SubmissionService, payments service.PaymentService) *DonorHandler {
	return &DonorHandler{submissions: submissions, payments: payments}
}

// List handles GET /api/donor.
func (h *DonorHandler) List(w http.ResponseWriter, r *http.Request) {
	donors, err := h.submissions.ListDonors(r.Context())
	if err != nil {
		writeServiceError(w, err, donorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, donors)
}

// Get handles GET /api/donor/{id}.
func (h *DonorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, donorNotFound)
		return
	}
	d, err := h.submissions.GetDonor(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, donorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Create handles POST /api/donor. isApproved in the body is ignored.
func (h *DonorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req donorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	d, err := h.submissions.CreateDonor(r.Context(), req.donor())
	if err != nil {
		writeServiceError(w, err, donorNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// Update handles PUT /api/donor/{id}. Omitted fields keep their stored value.
func (h *DonorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, donorNotFound)
		return
	}
	var req donorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}
	d, err := h.submissions.UpdateDonor(r.Context(), id, req.patch())
	if err != nil {
		writeServiceError(w, err, donorNotFound)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CreatePaymentIntent handles POST /api/donor/create-payment-intent.
func (h *DonorHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount")
		return
	}

	secret, err := h.payments.CreatePaymentIntent(r.Context(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			writeError(w, http.StatusBadRequest, "Invalid amount")
			return
		}
		slog.Error("create payment intent failed", "error", err)
		var apiErr *pkgstripe.APIError
		if errors.As(err, &apiErr) {
			writeError(w, http.StatusInternalServerError, apiErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}
