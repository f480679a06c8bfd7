package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/helpinghands/backend/internal/document"
	"github.com/helpinghands/backend/internal/repository"
	"github.com/helpinghands/backend/internal/service"
)

// maxJSONBody caps request bodies; inline documents travel base64 encoded.
const maxJSONBody = 15 << 20

type Handler struct {
	db          repository.DB
	frontendURL string
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a size-capped JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(v)
}

// writeDecodeError answers a body that could not be read. Oversized bodies are
// reported with the document size message since a document is the only
// field that can get that large.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || r.ContentLength > maxJSONBody {
		sizeErr := &document.SizeExceededError{Limit: document.MaxSize, Estimated: r.ContentLength * 3 / 4}
		writeError(w, http.StatusBadRequest, sizeErr.Error())
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_json")
}

// pathID parses the {id} wildcard. Non-numeric ids cannot match a row.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeServiceError maps a service error onto a status code. notFound is the
// message used for repository.ErrNotFound.
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	var verr *service.ValidationError
	var sizeErr *document.SizeExceededError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &sizeErr):
		writeError(w, http.StatusBadRequest, sizeErr.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Database error")
	}
}
