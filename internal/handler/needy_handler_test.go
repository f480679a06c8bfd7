package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/helpinghands/backend/internal/model"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func needyBody(extra string) string {
	body := fmt.Sprintf(`{"name":%q,"email":%q,"phone":%q,"description":%q`,
		gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(), gofakeit.Sentence(6))
	if extra != "" {
		body += "," + extra
	}
	return body + "}"
}

func decodeNeedy(t *testing.T, body []byte) model.Needy {
	t.Helper()
	var n model.Needy
	if err := json.Unmarshal(body, &n); err != nil {
		t.Fatalf("decode needy: %v - body: %s", err, body)
	}
	return n
}

// multipartNeedy builds a multipart body with the given form fields and an
// optional "document" file.
func multipartNeedy(t *testing.T, fields map[string]string, file []byte) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile("document", "proof.pdf")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return mw.FormDataContentType(), &buf
}

func TestNeedyHandler_Create_InlineDocument(t *testing.T) {
	env := newTestEnv(t)
	pdf := base64.StdEncoding.EncodeToString(samplePDF)

	rec := env.doJSON(t, http.MethodPost, "/api/needy", needyBody(fmt.Sprintf(`"pdf":%q,"isApproved":true`, pdf)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d - body: %s", rec.Code, rec.Body.String())
	}
	n := decodeNeedy(t, rec.Body.Bytes())
	if n.IsApproved {
		t.Error("expected isApproved=false")
	}
	if n.PDF == nil || *n.PDF != pdf {
		t.Error("expected inline document to be stored as sent")
	}
	if n.DocumentPath != nil {
		t.Errorf("expected no document path, got %q", *n.DocumentPath)
	}
	if env.store.len() != 0 {
		t.Error("inline strategy must not write files")
	}
}

func TestNeedyHandler_Create_OversizedDocument(t *testing.T) {
	env := newTestEnv(t)
	pdf := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{'A'}, 11<<20))

	rec := env.doJSON(t, http.MethodPost, "/api/needy", needyBody(fmt.Sprintf(`"pdf":%q`, pdf)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if !strings.Contains(resp["error"], "10MB") || !strings.Contains(resp["error"], "11.00MB") {
		t.Errorf("expected size message naming 10MB and 11.00MB, got %q", resp["error"])
	}
	if len(env.needy.rows) != 0 {
		t.Error("expected nothing stored")
	}
}

func TestNeedyHandler_Create_PathStrategyStoresFile(t *testing.T) {
	env := newTestEnv(t, withFileStorage())
	pdf := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(samplePDF)

	rec := env.doJSON(t, http.MethodPost, "/api/needy", needyBody(fmt.Sprintf(`"pdf":%q`, pdf)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d - body: %s", rec.Code, rec.Body.String())
	}
	n := decodeNeedy(t, rec.Body.Bytes())
	if n.PDF != nil {
		t.Error("expected inline column to stay empty")
	}
	if n.DocumentPath == nil || !strings.HasPrefix(*n.DocumentPath, "/uploads/needy/") {
		t.Fatalf("expected /uploads/needy/... path, got %v", n.DocumentPath)
	}
	key, _ := env.store.KeyFromURL(*n.DocumentPath)
	if !bytes.Equal(env.store.objects[key], samplePDF) {
		t.Error("stored file does not match the uploaded document")
	}
}

func TestNeedyHandler_Create_Multipart(t *testing.T) {
	env := newTestEnv(t)
	ct, body := multipartNeedy(t, map[string]string{
		"name":  gofakeit.Name(),
		"email": gofakeit.Email(),
		"phone": gofakeit.Phone(),
	}, samplePDF)

	rec := env.do(t, http.MethodPost, "/api/needy", ct, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d - body: %s", rec.Code, rec.Body.String())
	}
	n := decodeNeedy(t, rec.Body.Bytes())
	if n.DocumentPath == nil || !strings.HasSuffix(*n.DocumentPath, ".pdf") {
		t.Fatalf("expected stored .pdf path, got %v", n.DocumentPath)
	}
	if env.store.len() != 1 {
		t.Errorf("expected one stored file, got %d", env.store.len())
	}
}

func TestNeedyHandler_Create_MultipartRejectsNonPDF(t *testing.T) {
	env := newTestEnv(t)
	ct, body := multipartNeedy(t, map[string]string{
		"name": "A", "email": "a@b.co", "phone": "1",
	}, []byte("GIF89a not a pdf"))

	rec := env.do(t, http.MethodPost, "/api/needy", ct, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if env.store.len() != 0 {
		t.Error("expected nothing stored")
	}
}

func TestNeedyHandler_Create_MultipartValidationRemovesFile(t *testing.T) {
	env := newTestEnv(t)
	ct, body := multipartNeedy(t, map[string]string{"name": "Missing Contact"}, samplePDF)

	rec := env.do(t, http.MethodPost, "/api/needy", ct, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.store.len() != 0 {
		t.Error("expected uploaded file to be removed after a rejected submission")
	}
}

func TestNeedyHandler_Update_KeepsDocumentWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	pdf := base64.StdEncoding.EncodeToString(samplePDF)
	created := decodeNeedy(t, env.doJSON(t, http.MethodPost, "/api/needy", needyBody(fmt.Sprintf(`"pdf":%q`, pdf))).Body.Bytes())

	rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/needy/%d", created.ID), `{"location":"Accra"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d - body: %s", rec.Code, rec.Body.String())
	}
	n := decodeNeedy(t, rec.Body.Bytes())
	if n.PDF == nil || *n.PDF != pdf {
		t.Error("expected document to be kept")
	}
	if n.Location == nil || *n.Location != "Accra" {
		t.Errorf("expected location=Accra, got %v", n.Location)
	}
}

func TestNeedyHandler_Update_OversizedDocument(t *testing.T) {
	env := newTestEnv(t)
	created := decodeNeedy(t, env.doJSON(t, http.MethodPost, "/api/needy", needyBody("")).Body.Bytes())
	pdf := strings.Repeat("A", 14<<20)

	rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/needy/%d", created.ID), fmt.Sprintf(`{"pdf":%q}`, pdf))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestNeedyHandler_Update_ClientApprovalDisabled(t *testing.T) {
	env := newTestEnv(t, withClientApproval(false))
	created := decodeNeedy(t, env.doJSON(t, http.MethodPost, "/api/needy", needyBody("")).Body.Bytes())

	rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/needy/%d", created.ID), `{"isApproved":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decodeNeedy(t, rec.Body.Bytes()).IsApproved {
		t.Error("expected isApproved to stay false")
	}
}

func TestNeedyHandler_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/needy/12", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Needy request not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
