// Package storage provides the S3-compatible file store used for
// itinerary documents (contracts, invoices, brochures).
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignTTL is how long generated download links stay valid.
const presignTTL = 5 * time.Minute

// FileStorage is the abstraction the document service works against.
type FileStorage interface {
	// Save uploads a file under the given storage key.
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Delete removes the file at the given storage key.
	Delete(ctx context.Context, key string) error

	// GetURL returns a presigned download URL and its expiry time.
	GetURL(ctx context.Context, key string) (string, time.Time, error)
}

// S3FileStorage stores files in any S3-compatible bucket (AWS S3,
// Cloudflare R2, MinIO).
type S3FileStorage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

var _ FileStorage = (*S3FileStorage)(nil)

// NewS3FileStorage creates a new S3-backed file storage instance.
// endpoint may be empty for plain AWS S3.
func NewS3FileStorage(endpoint, region, bucketName, accessKeyID, secretAccessKey string) (*S3FileStorage, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("storage bucket name is required")
	}

	opts := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
	}
	if endpoint != "" {
		opts.BaseEndpoint = &endpoint
	}
	client := s3.New(opts)

	return &S3FileStorage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: bucketName,
	}, nil
}

// ValidateKey rejects storage keys containing path traversal segments.
func ValidateKey(key string) error {
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected in storage key")
		}
	}
	return nil
}

// Save uploads a file to the bucket.
func (s *S3FileStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("s3 put object failed: %w", err)
	}
	return nil
}

// Delete removes a file from the bucket.
func (s *S3FileStorage) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("s3 delete object failed: %w", err)
	}
	return nil
}

// GetURL returns a presigned download URL with a short TTL.
// The Content-Disposition header carries the original filename extracted
// from the key (format: documents/<documentID>/<filename>).
func (s *S3FileStorage) GetURL(ctx context.Context, key string) (string, time.Time, error) {
	if err := ValidateKey(key); err != nil {
		return "", time.Time{}, err
	}
	baseName := filepath.Base(key)
	disposition := fmt.Sprintf("attachment; filename=%q", baseName)
	expiresAt := time.Now().Add(presignTTL)
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     &s.bucketName,
		Key:                        &key,
		ResponseContentDisposition: &disposition,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("s3 presign failed: %w", err)
	}
	return result.URL, expiresAt, nil
}
