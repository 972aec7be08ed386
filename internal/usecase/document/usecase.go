// Package document handles attaching supporting files to a loan
// application: direct uploads through the API, registration of files the
// client pushed straight to the CDN, and admin retrieval.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"loanhub-backend/internal/domain/application"
	domain "loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/storage"
)

// MaxUploadSize caps direct uploads at 10MB.
const MaxUploadSize = 10 << 20

var (
	ErrInvalidType     = errors.New("unknown document type")
	ErrFileTooLarge    = fmt.Errorf("file exceeds the %dMB upload limit", MaxUploadSize>>20)
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedMime = errors.New("unsupported file type")
)

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/png":          {},
	"image/webp":         {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

type UploadInput struct {
	Ref         string
	Type        domain.Type
	FileName    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// AssociateInput registers a file the client uploaded directly to the CDN.
type AssociateInput struct {
	Ref      string
	Type     domain.Type
	FileName string
	URL      string
	PublicID string
	Size     int64
	MimeType string
}

type Usecase struct {
	apps  application.Repository
	docs  domain.Repository
	store storage.Store
	log   *zap.Logger
}

func NewUsecase(apps application.Repository, docs domain.Repository, store storage.Store, log *zap.Logger) *Usecase {
	return &Usecase{apps: apps, docs: docs, store: store, log: log}
}

// Upload stores the file and upserts the metadata row. Re-uploading the
// same document type for an application replaces the previous file: the
// storage key is deterministic per (application, type), so Put overwrites
// in place and the row keeps a single current version.
func (u *Usecase) Upload(ctx context.Context, requesterID uint64, in UploadInput) (*domain.Document, error) {
	if !in.Type.Valid() {
		return nil, ErrInvalidType
	}
	if in.Size <= 0 {
		return nil, ErrEmptyFile
	}
	if in.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	ct := normalizeMime(in.ContentType)
	if _, ok := allowedMimeTypes[ct]; !ok {
		return nil, ErrUnsupportedMime
	}

	app, err := u.ownedApplication(ctx, in.Ref, requesterID)
	if err != nil {
		return nil, err
	}

	key := storageKey(app.ApplicationRef, in.Type)
	obj, err := u.store.Put(ctx, key, in.Body, in.Size, ct)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	doc := &domain.Document{
		ApplicationID: app.ID,
		DocumentType:  in.Type,
		FileName:      in.FileName,
		StoragePath:   obj.URL,
		FileSize:      in.Size,
		MimeType:      ct,
		PublicID:      obj.PublicID,
		UploadedAt:    time.Now(),
	}
	if err := u.docs.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	u.log.Info("document uploaded",
		zap.String("application", app.ApplicationRef),
		zap.String("type", string(in.Type)),
		zap.Int64("size", in.Size))
	return doc, nil
}

// AssociateExternal records a CDN-direct upload the client performed with a
// signature from SignUpload. No bytes pass through the API.
func (u *Usecase) AssociateExternal(ctx context.Context, requesterID uint64, in AssociateInput) (*domain.Document, error) {
	if !in.Type.Valid() {
		return nil, ErrInvalidType
	}
	if in.URL == "" || in.PublicID == "" {
		return nil, errors.New("url and public id are required")
	}

	app, err := u.ownedApplication(ctx, in.Ref, requesterID)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ApplicationID: app.ID,
		DocumentType:  in.Type,
		FileName:      in.FileName,
		StoragePath:   in.URL,
		FileSize:      in.Size,
		MimeType:      normalizeMime(in.MimeType),
		PublicID:      in.PublicID,
		UploadedAt:    time.Now(),
	}
	if err := u.docs.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Download hands a stored document back: CDN-backed stores answer with a
// redirect URL, the local store with the file body.
func (u *Usecase) Download(ctx context.Context, docID uint64) (*domain.Document, *storage.Download, error) {
	doc, err := u.docs.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	dl, err := u.store.Resolve(ctx, doc.StoragePath, doc.PublicID)
	if err != nil {
		// Row without a backing file is as gone as no row at all.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	return doc, dl, nil
}

// SignUpload produces client-side upload parameters. Only CDN backends can
// sign; the local backend answers storage.ErrUnsupported.
func (u *Usecase) SignUpload(params url.Values) (*storage.UploadSignature, error) {
	return u.store.SignUploadParams(params)
}

func (u *Usecase) ownedApplication(ctx context.Context, ref string, requesterID uint64) (*application.Application, error) {
	app, err := u.apps.GetByRef(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, err
	}
	// requesterID 0 is the admin path.
	if requesterID != 0 && app.UserID != requesterID {
		return nil, application.ErrNotFound
	}
	return app, nil
}

func storageKey(ref string, t domain.Type) string {
	return fmt.Sprintf("applications/%s/%s", ref, strings.ToLower(string(t)))
}

func normalizeMime(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
