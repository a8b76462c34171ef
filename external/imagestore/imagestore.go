package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

const logPrefix = "imagestore"

var (
	ErrNotImage = fmt.Errorf("file is not an image")
)

// ImageStore - interface to keep donation pictures
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the base of the returned image urls
	PublicURL string
}

type minioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// New creates the minio client and makes sure the bucket exists
func New(ctx context.Context, cfg Config) (ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, err)
		}
		log.WithField("prefix", logPrefix).Infof("created bucket %s", cfg.Bucket)
	}

	baseURL := cfg.PublicURL
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}

	return &minioStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores the image under a random key and returns its public url
func (s *minioStore) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	key := fmt.Sprintf("donations/%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"key":    info.Key,
		"size":   info.Size,
	}).Info("uploaded donation image")

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}
