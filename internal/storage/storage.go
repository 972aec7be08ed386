// Package storage abstracts where uploaded documents live: the Cloudinary
// CDN in production, the local filesystem for development.
package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
)

type Kind string

const (
	KindLocal      Kind = "local"
	KindCloudinary Kind = "cloudinary"
)

// ErrUnsupported is returned for operations a backend cannot perform
// (e.g. signing client-side upload parameters on the local backend).
var ErrUnsupported = errors.New("operation not supported by storage backend")

// Object is the durable reference returned by Put.
type Object struct {
	// URL is the durable read location (CDN delivery URL, or the local
	// public path).
	URL string
	// PublicID identifies the object to the backend for later resolve/delete.
	PublicID string
}

// Download is how a stored object is handed back to a client: CDN-backed
// stores fill RedirectURL, local stores fill Body and Size.
type Download struct {
	RedirectURL string
	Body        io.ReadCloser
	Size        int64
}

// UploadSignature authorizes one client-side direct upload.
type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
}

type Store interface {
	Kind() Kind
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)
	// Resolve turns a stored (url, publicID) pair back into a Download.
	Resolve(ctx context.Context, storedURL, publicID string) (*Download, error)
	Delete(ctx context.Context, publicID string) error
	SignUploadParams(params url.Values) (*UploadSignature, error)
}
