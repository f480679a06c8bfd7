package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/helpinghands/backend/internal/repository"
	"github.com/helpinghands/backend/internal/service"
)

// AdminHandler serves the /api/admin review endpoints.
type AdminHandler struct {
	approvals service.ApprovalService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(approvals service.ApprovalService) *AdminHandler {
	return &AdminHandler{approvals: approvals}
}

// AllUsers handles GET /api/admin/all-users: every donor and needy record,
// newest first.
func (h *AdminHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.approvals.ListAllForApproval(r.Context())
	if err != nil {
		slog.Error("list approvals failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// PDF handles GET /api/admin/pdf/{id} and streams the needy document inline.
func (h *AdminHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}
	data, err := h.approvals.FetchDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrNoDocument) {
			writeError(w, http.StatusNotFound, "PDF not found")
			return
		}
		slog.Error("fetch document failed", "error", err, "needy_id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=document.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// Approve handles PUT /api/admin/approve.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := decodeJSON(w, r, &req); err != nil || req.IsApproved == nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err := h.approvals.SetApproval(r.Context(), req.UserType, int64(req.ID), bool(*req.IsApproved))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Updated successfully"})
	case errors.Is(err, service.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "User not found"})
	default:
		slog.Error("set approval failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
