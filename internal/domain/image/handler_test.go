package image

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/careline/careline/internal/platform/blobstore"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	store, err := blobstore.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create file store: %v", err)
	}
	h := NewHandler(NewService(NewMemRepo(), store, 10<<20))
	e := echo.New()
	return h, e
}

func multipartUpload(t *testing.T, filename, mimetype, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	hdr.Set("Content-Type", mimetype)
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte(content))

	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandler_Upload(t *testing.T) {
	h, e := newTestHandler(t)

	body, contentType := multipartUpload(t, "scan.png", "image/png", "data",
		map[string]string{"concernId": "c1"})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var out Image
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.ID == "" {
		t.Error("expected id in response")
	}
	if out.ConcernID == nil || *out.ConcernID != "c1" {
		t.Error("expected concernId attachment")
	}
}

func TestHandler_Upload_NoFile(t *testing.T) {
	h, e := newTestHandler(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("concernId", "c1")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file, got %v", err)
	}
}

func TestHandler_Upload_BadType(t *testing.T) {
	h, e := newTestHandler(t)

	body, contentType := multipartUpload(t, "notes.pdf", "application/pdf", "data", nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for disallowed type, got %v", err)
	}
}

func TestHandler_ServeFile(t *testing.T) {
	h, e := newTestHandler(t)

	body, contentType := multipartUpload(t, "scan.png", "image/png", "data", nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	h.Upload(e.NewContext(req, rec))

	var img Image
	json.Unmarshal(rec.Body.Bytes(), &img)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues(img.Path)

	if err := h.ServeFile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, "image/png") {
		t.Errorf("expected image/png content type, got %s", got)
	}
	if rec.Body.String() != "data" {
		t.Errorf("expected file contents, got %q", rec.Body.String())
	}
}

func TestHandler_ServeFile_Traversal(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues("../../etc/passwd")

	err := h.ServeFile(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for traversal attempt, got %v", err)
	}
}

func TestHandler_ServeFile_EncodedTraversal(t *testing.T) {
	// Drive the full router so the filename parameter arrives exactly as
	// a client would send it: percent-encoded separators intact.
	h, e := newTestHandler(t)
	h.RegisterRoutes(e.Group("/api/v1"))

	for _, target := range []string{
		"/api/v1/images/file/..%2f..%2fetc%2fpasswd",
		"/api/v1/images/file/..%2F..%2Fetc%2Fpasswd",
		"/api/v1/images/file/%2e%2e%2f%2e%2e%2fetc%2fpasswd",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d (body %s)", target, rec.Code, rec.Body.String())
		}
	}
}

func TestHandler_ServeFile_Missing(t *testing.T) {
	h, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("filename")
	c.SetParamValues("nope.png")

	err := h.ServeFile(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing file, got %v", err)
	}
}

func TestHandler_Delete(t *testing.T) {
	h, e := newTestHandler(t)

	body, contentType := multipartUpload(t, "scan.png", "image/png", "data", nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	h.Upload(e.NewContext(req, rec))

	var img Image
	json.Unmarshal(rec.Body.Bytes(), &img)

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(img.ID)

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("expected success response, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues(img.ID)
	err := h.Delete(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeat delete, got %v", err)
	}
}
