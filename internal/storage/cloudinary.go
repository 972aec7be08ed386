package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStore uploads documents to Cloudinary and serves them back by
// redirecting to the delivery URL recorded at upload time.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string, logger *zap.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder, logger: logger.Named("CloudinaryStore")}, nil
}

func (s *CloudinaryStore) Kind() Kind { return KindCloudinary }

func (s *CloudinaryStore) Put(ctx context.Context, key string, r io.Reader, _ int64, _ string) (*Object, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     key,
		Folder:       s.folder,
		ResourceType: "auto",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		s.logger.Error("cloudinary upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	s.logger.Info("uploaded to cloudinary",
		zap.String("publicID", res.PublicID),
		zap.Int("bytes", res.Bytes))
	return &Object{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Resolve(_ context.Context, storedURL, _ string) (*Download, error) {
	if storedURL == "" {
		return nil, fmt.Errorf("document has no stored delivery URL")
	}
	return &Download{RedirectURL: storedURL}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}

// SignUploadParams signs parameters for a client-side direct upload. The
// timestamp is injected here so the signature window starts server-side.
func (s *CloudinaryStore) SignUploadParams(params url.Values) (*UploadSignature, error) {
	ts := time.Now().Unix()
	if params == nil {
		params = url.Values{}
	}
	params.Set("timestamp", strconv.FormatInt(ts, 10))
	if s.folder != "" && params.Get("folder") == "" {
		params.Set("folder", s.folder)
	}

	signature, err := api.SignParameters(params, s.cld.Config.Cloud.APISecret)
	if err != nil {
		return nil, fmt.Errorf("sign upload params: %w", err)
	}
	return &UploadSignature{
		Signature: signature,
		Timestamp: ts,
		APIKey:    s.cld.Config.Cloud.APIKey,
		CloudName: s.cld.Config.Cloud.CloudName,
	}, nil
}
