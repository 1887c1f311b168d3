package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"membercare_backend/platform/apperr"
	"membercare_backend/platform/config"
)

// presignTTL is the lifetime of presigned upload and download URLs.
const presignTTL = 15 * time.Minute

// allowedPhotoTypes restricts profile photos to web-displayable images.
var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MinIOStore implements PhotoStore over a MinIO/S3 bucket.
type MinIOStore struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// NewMinIOStore connects to the configured endpoint and ensures the
// photo bucket exists.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("minio is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	store := &MinIOStore{
		client:      client,
		bucket:      cfg.GetMinioBucketProfilePhotos(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinIOStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// PresignUpload validates the file and returns a presigned PUT URL.
// Keys are {church}/{member}/{random}{ext} so re-uploads never collide.
func (s *MinIOStore) PresignUpload(ctx context.Context, churchID, memberID, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	if !allowedPhotoTypes[normalized] {
		return nil, apperr.Validation(fmt.Sprintf("content type %q is not an allowed photo type", contentType))
	}
	if sizeBytes <= 0 {
		return nil, apperr.Validation("file size must be greater than 0")
	}
	if sizeBytes > s.maxFileSize {
		return nil, apperr.Validation(fmt.Sprintf("file exceeds the maximum photo size of %d bytes", s.maxFileSize))
	}

	key := path.Join(churchID, memberID, uuid.New().String()+path.Ext(fileName))
	expiresAt := time.Now().Add(presignTTL)

	presigned, err := s.client.PresignedPutObject(ctx, s.bucket, key, presignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload %s: %w", key, err)
	}
	return &PresignedURL{URL: presigned.String(), ObjectKey: key, ExpiresAt: expiresAt}, nil
}

// PresignDownload returns a presigned GET URL for an existing key.
func (s *MinIOStore) PresignDownload(ctx context.Context, objectKey string) (*PresignedURL, error) {
	expiresAt := time.Now().Add(presignTTL)

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, presignTTL, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("presign download %s: %w", objectKey, err)
	}
	return &PresignedURL{URL: presigned.String(), ObjectKey: objectKey, ExpiresAt: expiresAt}, nil
}

// Remove deletes a photo object.
func (s *MinIOStore) Remove(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}
	return nil
}

var _ PhotoStore = (*MinIOStore)(nil)
