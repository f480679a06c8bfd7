package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/helpinghands/backend/internal/document"
	"github.com/helpinghands/backend/internal/service"
	"github.com/helpinghands/backend/internal/storage"
)

const (
	needyNotFound = "Needy request not found"
	// multipart parts beyond this are spooled to disk
	multipartMemory = 1 << 20
)

// NeedyHandler serves /api/needy. Documents arrive either inline as base64
// in the JSON "pdf" field or as a multipart "document" file.
type NeedyHandler struct {
	submissions service.SubmissionService
	store       storage.Storage
	// storeFiles moves inline base64 documents to the store as well.
	storeFiles bool
}

// NewNeedyHandler creates a NeedyHandler. store may be nil, in which case
// multipart uploads are rejected.
func NewNeedyHandler(submissions service.SubmissionService, store storage.Storage, storeFiles bool) *NeedyHandler {
	return &NeedyHandler{submissions: submissions, store: store, storeFiles: storeFiles && store != nil}
}

// List handles GET /api/needy.
func (h *NeedyHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.submissions.ListNeedy(r.Context())
	if err != nil {
		writeServiceError(w, err, needyNotFound)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/needy/{id}.
func (h *NeedyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, needyNotFound)
		return
	}
	n, err := h.submissions.GetNeedy(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, needyNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Create handles POST /api/needy.
func (h *NeedyHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, storedKey, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	n, err := h.submissions.CreateNeedy(r.Context(), req.needy())
	if err != nil {
		h.discard(r, storedKey)
		writeServiceError(w, err, needyNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

// Update handles PUT /api/needy/{id}. Omitted fields keep their stored value.
func (h *NeedyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, needyNotFound)
		return
	}
	req, storedKey, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	n, err := h.submissions.UpdateNeedy(r.Context(), id, req.patch())
	if err != nil {
		h.discard(r, storedKey)
		writeServiceError(w, err, needyNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// readRequest decodes a JSON or multipart body. When a document is written to
// the store its key is returned so a failed write-through can remove it.
// On failure the response has already been written.
func (h *NeedyHandler) readRequest(w http.ResponseWriter, r *http.Request) (needyRequest, string, bool) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		return h.readMultipart(w, r)
	}

	var req needyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return req, "", false
	}
	if !h.storeFiles || req.PDF == nil || *req.PDF == "" {
		return req, "", true
	}

	// path strategy: keep the bytes on disk and only the reference in the row
	if err := document.Validate(*req.PDF); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	raw, err := document.Decode(*req.PDF)
	if err != nil {
		writeError(w, http.StatusBadRequest, "pdf must be base64 encoded")
		return req, "", false
	}
	key, url, ok := h.save(w, r, bytes.NewReader(raw))
	if !ok {
		return req, "", false
	}
	req.PDF = nil
	req.documentPath = &url
	return req, key, true
}

func (h *NeedyHandler) readMultipart(w http.ResponseWriter, r *http.Request) (needyRequest, string, bool) {
	var req needyRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeDecodeError(w, r, err)
		return req, "", false
	}
	form := r.MultipartForm
	field := func(name string) *string {
		if v, ok := form.Value[name]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}
	req.Name = field("name")
	req.Email = field("email")
	req.Location = field("location")
	req.Phone = field("phone")
	req.Description = field("description")
	req.BankTransferRef = field("bankTransferRef")
	if v := field("isApproved"); v != nil {
		var b flexBool
		if err := b.UnmarshalJSON([]byte(*v)); err == nil {
			req.IsApproved = &b
		}
	}

	file, header, err := r.FormFile("document")
	if errors.Is(err, http.ErrMissingFile) {
		return req, "", true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document upload")
		return req, "", false
	}
	defer file.Close()

	if err := document.ValidateSize(header.Size); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, "", false
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	if http.DetectContentType(head[:n]) != "application/pdf" {
		writeError(w, http.StatusBadRequest, "document must be a PDF")
		return req, "", false
	}
	key, url, ok := h.save(w, r, io.MultiReader(bytes.NewReader(head[:n]), file))
	if !ok {
		return req, "", false
	}
	req.documentPath = &url
	return req, key, true
}

func (h *NeedyHandler) save(w http.ResponseWriter, r *http.Request, data io.Reader) (key, url string, ok bool) {
	if h.store == nil {
		writeError(w, http.StatusBadRequest, "document uploads are not enabled")
		return "", "", false
	}
	key = storage.DocumentKey("needy", ".pdf", time.Now())
	url, err := h.store.Save(r.Context(), key, data, "application/pdf")
	if err != nil {
		slog.Error("document upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return "", "", false
	}
	return key, url, true
}

func (h *NeedyHandler) discard(r *http.Request, key string) {
	if key == "" {
		return
	}
	if err := h.store.Delete(r.Context(), key); err != nil {
		slog.Warn("orphaned document", "key", key, "error", err)
	}
}
