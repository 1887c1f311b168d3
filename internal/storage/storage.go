// Package storage provides an S3-compatible object store adapter for
// member profile photos. Uploads and downloads happen browser-side
// through short-lived presigned URLs; the API never proxies photo bytes.
package storage

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL for one upload or download.
type PresignedURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PhotoStore is the storage surface the members module depends on.
type PhotoStore interface {
	// PresignUpload returns a PUT URL for a new profile photo. The
	// object key is namespaced per church and member so a tenant can
	// never address another tenant's objects.
	PresignUpload(ctx context.Context, churchID, memberID, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)

	// PresignDownload returns a GET URL for an existing photo key.
	PresignDownload(ctx context.Context, objectKey string) (*PresignedURL, error)

	// Remove deletes a photo object.
	Remove(ctx context.Context, objectKey string) error
}
