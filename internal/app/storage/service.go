/*
Package storage provides object storage for avatar images referenced by user
records. Clients upload avatars directly to an S3-compatible bucket through
time-limited presigned URLs; the server never proxies image bytes.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service defines the public interface for the avatar storage service.
type Service interface {
	// PresignUpload generates a pre-signed URL for uploading an avatar image.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// PresignDownload generates a pre-signed URL for downloading an avatar image.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)
}

// NewService is the factory function for Service.
// Only S3-compatible backends are currently supported.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Client(cfg)
}
