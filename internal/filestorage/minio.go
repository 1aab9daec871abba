package filestorage

import (
	"context"
	"fmt"
	"io"

	"material_market_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioOptions configures the S3-compatible image store.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore uploads images to an S3 bucket and returns path-style URLs.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// NewMinioStore connects and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions, logger *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", opts.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(ctx, opts.Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", opts.Bucket, err, errExists)
		}
	}

	logger.Info("MinIO image store ready", zap.String("endpoint", opts.Endpoint), zap.String("bucket", opts.Bucket))
	return &MinioStore{client: client, bucket: opts.Bucket, logger: logger}, nil
}

func (s *MinioStore) Name() string { return config.ImageStoreMinio }

func (s *MinioStore) Save(ctx context.Context, objectName, contentType string, src io.Reader, size int64) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, src, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectName, s.bucket, err)
	}
	s.logger.Info("Image uploaded", zap.String("bucket", info.Bucket), zap.String("key", info.Key), zap.Int64("size", info.Size))
	return s.PublicURL(objectName), nil
}

// PublicURL is <endpoint>/<bucket>/<object>.
func (s *MinioStore) PublicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectName)
}
