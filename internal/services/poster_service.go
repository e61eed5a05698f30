package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"movie-recommendation/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const posterUploadExpiry = 15 * time.Minute

// PosterRemover deletes poster objects that belong to the service bucket.
type PosterRemover interface {
	RemovePoster(ctx context.Context, posterURL string) error
}

type PosterUpload struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type PosterService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *logrus.Logger
}

func NewPosterService(cfg *config.MinIOConfig, logger *logrus.Logger) (*PosterService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + endpoint
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("Poster storage initialized")

	service := &PosterService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := service.ensureBucket(ctx, cfg.Region); err != nil {
		logger.WithError(err).Warn("Failed to configure poster bucket, but continuing...")
	}

	return service, nil
}

func (s *PosterService) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// PresignUpload returns a short-lived PUT URL for a poster of the given movie
// and the public URL the object will have once uploaded.
func (s *PosterService) PresignUpload(ctx context.Context, movieID uint, filename string) (*PosterUpload, error) {
	objectName := posterObjectName(movieID, filename)

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, posterUploadExpiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movieID,
		"object":   objectName,
		"expiry":   posterUploadExpiry,
	}).Info("Generated poster upload URL")

	return &PosterUpload{
		UploadURL: presignedURL.String(),
		PublicURL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName),
		ExpiresAt: time.Now().UTC().Add(posterUploadExpiry),
	}, nil
}

// RemovePoster deletes the object behind posterURL. URLs that do not point
// into this bucket are left alone.
func (s *PosterService) RemovePoster(ctx context.Context, posterURL string) error {
	objectName, ok := s.objectName(posterURL)
	if !ok {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		s.logger.WithError(err).WithField("object", objectName).Error("Failed to delete poster")
		return fmt.Errorf("failed to delete poster: %w", err)
	}

	s.logger.WithField("object", objectName).Info("Poster deleted from storage")
	return nil
}

func (s *PosterService) objectName(posterURL string) (string, bool) {
	prefix := s.publicURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(posterURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(posterURL, prefix)
	if idx := strings.Index(name, "?"); idx != -1 {
		name = name[:idx]
	}
	return name, name != ""
}

func posterObjectName(movieID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	return fmt.Sprintf("movies/%d/%s_%s%s", movieID, base, uuid.New().String()[:8], ext)
}
