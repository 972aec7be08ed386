package storemock

import (
	"context"
	"errors"
	"io"
	"net/url"

	"loanhub-backend/internal/storage"
)

var _ storage.Store = (*Store)(nil)

var errUnimplemented = errors.New("storemock: method not implemented")

// Store is a function-backed mock that satisfies storage.Store.
type Store struct {
	KindValue          storage.Kind
	PutFn              func(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.Object, error)
	ResolveFn          func(ctx context.Context, storedURL, publicID string) (*storage.Download, error)
	DeleteFn           func(ctx context.Context, publicID string) error
	SignUploadParamsFn func(params url.Values) (*storage.UploadSignature, error)
}

func (m *Store) Kind() storage.Kind {
	if m.KindValue != "" {
		return m.KindValue
	}
	return storage.KindLocal
}

func (m *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.Object, error) {
	if m.PutFn != nil {
		return m.PutFn(ctx, key, r, size, contentType)
	}
	return &storage.Object{URL: "/uploads/" + key, PublicID: key}, nil
}

func (m *Store) Resolve(ctx context.Context, storedURL, publicID string) (*storage.Download, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, storedURL, publicID)
	}
	return nil, errUnimplemented
}

func (m *Store) Delete(ctx context.Context, publicID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, publicID)
	}
	return nil
}

func (m *Store) SignUploadParams(params url.Values) (*storage.UploadSignature, error) {
	if m.SignUploadParamsFn != nil {
		return m.SignUploadParamsFn(params)
	}
	return nil, storage.ErrUnsupported
}
