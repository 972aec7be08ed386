package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appDomain "loanhub-backend/internal/domain/application"
	docDomain "loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/storage"
	"loanhub-backend/internal/testutil/applicationmock"
	"loanhub-backend/internal/testutil/documentmock"
	"loanhub-backend/internal/testutil/storemock"
	docuc "loanhub-backend/internal/usecase/document"
)

func newDocHandler(docs *documentmock.Repo, store *storemock.Store) *DocumentHandler {
	apps := &applicationmock.Repo{
		GetByRefFn: func(ctx context.Context, ref string) (*appDomain.Application, error) {
			if ref != "APP-7K2M9QW4XT" {
				return nil, gorm.ErrRecordNotFound
			}
			return &appDomain.Application{ID: 42, ApplicationRef: ref, UserID: 7}, nil
		},
	}
	return NewDocumentHandler(docuc.NewUsecase(apps, docs, store, zap.NewNop()))
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func TestUploadHandler_Created(t *testing.T) {
	e := newEchoWithValidator()
	var saved *docDomain.Document
	docs := &documentmock.Repo{
		UpsertFn: func(ctx context.Context, d *docDomain.Document) error {
			saved = d
			return nil
		},
	}
	h := newDocHandler(docs, &storemock.Store{})

	body, ctype := multipartUpload(t, "id.png", "image/png", []byte("png-bytes"), map[string]string{
		"applicationId": "APP-7K2M9QW4XT",
		"documentType":  "GOVERNMENT_ID",
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()

	if err := h.Upload(userContext(e, req, rec)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	if saved == nil || saved.ApplicationID != 42 || saved.DocumentType != docDomain.TypeGovernmentID {
		t.Errorf("saved = %+v", saved)
	}
}

func TestUploadHandler_BadMime(t *testing.T) {
	e := newEchoWithValidator()
	h := newDocHandler(&documentmock.Repo{}, &storemock.Store{})

	body, ctype := multipartUpload(t, "archive.zip", "application/zip", []byte("zip"), map[string]string{
		"applicationId": "APP-7K2M9QW4XT",
		"documentType":  "GOVERNMENT_ID",
	})
	req := httptest.NewRequest(stdhttp.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()

	if err := h.Upload(userContext(e, req, rec)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}

func TestAssociateHandler_Created(t *testing.T) {
	e := newEchoWithValidator()
	docs := &documentmock.Repo{}
	h := newDocHandler(docs, &storemock.Store{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/documents/associate", mustJSON(map[string]any{
		"applicationId": "APP-7K2M9QW4XT",
		"documentType":  "SELFIE",
		"url":           "https://res.cloudinary.com/demo/image/upload/v1/selfie.jpg",
		"publicId":      "loanhub/selfie",
		"fileName":      "selfie.jpg",
		"fileSize":      4096,
		"mimeType":      "image/jpeg",
	}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Associate(userContext(e, req, rec)); err != nil {
		t.Fatalf("Associate: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
}

func TestDownloadHandler_RedirectAndStream(t *testing.T) {
	e := newEchoWithValidator()
	docs := &documentmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*docDomain.Document, error) {
			return &docDomain.Document{
				ID:          id,
				FileName:    "id.png",
				MimeType:    "image/png",
				StoragePath: "https://cdn.example.com/id.png",
				PublicID:    "id",
			}, nil
		},
	}

	// CDN-backed store → redirect
	cdn := &storemock.Store{
		KindValue: storage.KindCloudinary,
		ResolveFn: func(ctx context.Context, storedURL, publicID string) (*storage.Download, error) {
			return &storage.Download{RedirectURL: storedURL}, nil
		},
	}
	h := newDocHandler(docs, cdn)
	req := httptest.NewRequest(stdhttp.MethodGet, "/documents/download?documentId=5", nil)
	rec := httptest.NewRecorder()
	if err := h.Download(adminContext(e, req, rec)); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if rec.Code != stdhttp.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "https://cdn.example.com/id.png" {
		t.Errorf("location = %q", loc)
	}

	// local store → stream with headers
	content := []byte("png-bytes")
	local := &storemock.Store{
		ResolveFn: func(ctx context.Context, storedURL, publicID string) (*storage.Download, error) {
			return &storage.Download{Body: io.NopCloser(bytes.NewReader(content)), Size: int64(len(content))}, nil
		},
	}
	h = newDocHandler(docs, local)
	req = httptest.NewRequest(stdhttp.MethodGet, "/documents/download?documentId=5", nil)
	rec = httptest.NewRecorder()
	if err := h.Download(adminContext(e, req, rec)); err != nil {
		t.Fatalf("Download(local): %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), content) {
		t.Errorf("body = %q", rec.Body)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd == "" {
		t.Error("missing content-disposition header")
	}
}

func TestDownloadHandler_MissingFileIs404(t *testing.T) {
	e := newEchoWithValidator()
	docs := &documentmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*docDomain.Document, error) {
			return &docDomain.Document{ID: id, PublicID: "gone"}, nil
		},
	}
	// The row survived but the file behind it is gone.
	local := &storemock.Store{
		ResolveFn: func(ctx context.Context, storedURL, publicID string) (*storage.Download, error) {
			return nil, &fs.PathError{Op: "stat", Path: publicID, Err: fs.ErrNotExist}
		},
	}

	h := newDocHandler(docs, local)
	req := httptest.NewRequest(stdhttp.MethodGet, "/documents/download?documentId=5", nil)
	rec := httptest.NewRecorder()
	if err := h.Download(adminContext(e, req, rec)); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
}

func TestSignUploadParamsHandler(t *testing.T) {
	e := newEchoWithValidator()

	// local backend cannot sign
	h := newDocHandler(&documentmock.Repo{}, &storemock.Store{})
	req := httptest.NewRequest(stdhttp.MethodPost, "/sign-cloudinary-params", mustJSON(map[string]string{"folder": "loanhub"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.SignUploadParams(adminContext(e, req, rec)); err != nil {
		t.Fatalf("SignUploadParams: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for local backend: %s", rec.Code, rec.Body)
	}

	// CDN backend answers a signature
	cdn := &storemock.Store{
		KindValue: storage.KindCloudinary,
		SignUploadParamsFn: func(params url.Values) (*storage.UploadSignature, error) {
			return &storage.UploadSignature{Signature: "sig", Timestamp: 1736123456, APIKey: "key", CloudName: "demo"}, nil
		},
	}
	h = newDocHandler(&documentmock.Repo{}, cdn)
	req = httptest.NewRequest(stdhttp.MethodPost, "/sign-cloudinary-params", mustJSON(map[string]string{"folder": "loanhub"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if err := h.SignUploadParams(adminContext(e, req, rec)); err != nil {
		t.Fatalf("SignUploadParams: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var sig storage.UploadSignature
	if err := json.Unmarshal(rec.Body.Bytes(), &sig); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sig.Signature != "sig" || sig.CloudName != "demo" {
		t.Errorf("signature = %+v", sig)
	}
}
