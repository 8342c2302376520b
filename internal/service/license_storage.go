package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LicenseStorageService hands out presigned URLs so clients upload business
// license images straight to object storage and submit the resulting URL.
type LicenseStorageService interface {
	// CreateUploadURL returns a presigned PUT URL and the object's storage path
	CreateUploadURL(ctx context.Context, userID, filename string) (uploadURL, storagePath string, err error)
	// GetDownloadURL generates a signed URL for the given storage path
	GetDownloadURL(ctx context.Context, storagePath string) (string, error)
}

type licenseStorage struct {
	presignClient *s3.PresignClient
	bucketName    string
	storageLogger zerolog.Logger
}

// NewLicenseStorageService creates a new LicenseStorageService
func NewLicenseStorageService(s3Client *s3.Client, bucketName string, logger zerolog.Logger) LicenseStorageService {
	return &licenseStorage{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		storageLogger: logger.With().Str("service", "LicenseStorageService").Logger(),
	}
}

func (s *licenseStorage) CreateUploadURL(ctx context.Context, userID, filename string) (string, string, error) {
	// The object key ignores the client-supplied name apart from its
	// extension, so path traversal in filenames is inert.
	storagePath := fmt.Sprintf("licenses/%s/%s%s", userID, uuid.NewString(), path.Ext(filename))

	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storagePath),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.storageLogger.Error().Err(err).Str("object_key", storagePath).Msg("Failed to generate presigned PUT URL")
		return "", "", fmt.Errorf("failed to generate presigned PUT URL: %w", err)
	}
	return request.URL, storagePath, nil
}

func (s *licenseStorage) GetDownloadURL(ctx context.Context, storagePath string) (string, error) {
	request, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storagePath),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.storageLogger.Error().Err(err).Str("object_key", storagePath).Msg("Failed to generate presigned GET URL")
		return "", fmt.Errorf("failed to generate presigned GET URL: %w", err)
	}
	return request.URL, nil
}
