package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads under baseDir and serves them back as streams.
type LocalStore struct {
	baseDir    string
	publicBase string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir, publicBase: "/uploads"}, nil
}

func (s *LocalStore) Kind() Kind { return KindLocal }

// cleanKey rejects keys that would escape baseDir.
func (s *LocalStore) cleanKey(key string) (string, error) {
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	key = strings.TrimPrefix(path.Clean(key), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return key, nil
}

func (s *LocalStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (*Object, error) {
	key, err := s.cleanKey(key)
	if err != nil {
		return nil, err
	}
	full := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}
	return &Object{URL: s.publicBase + "/" + key, PublicID: key}, nil
}

func (s *LocalStore) Resolve(_ context.Context, _ string, publicID string) (*Download, error) {
	key, err := s.cleanKey(publicID)
	if err != nil {
		return nil, err
	}
	full := filepath.Join(s.baseDir, filepath.FromSlash(key))
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	return &Download{Body: f, Size: info.Size()}, nil
}

func (s *LocalStore) Delete(_ context.Context, publicID string) error {
	key, err := s.cleanKey(publicID)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
}

func (s *LocalStore) SignUploadParams(_ url.Values) (*UploadSignature, error) {
	return nil, ErrUnsupported
}
