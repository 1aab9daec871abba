package filestorage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"material_market_backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// FirebaseStore uploads images to a Firebase Storage bucket.
type FirebaseStore struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

// NewFirebaseStore initializes the Firebase Admin SDK from a service
// account key file.
func NewFirebaseStore(ctx context.Context, credentialsFile, projectID, bucket string, logger *zap.Logger) (*FirebaseStore, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: bucket,
	}, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase storage client: %w", err)
	}

	logger.Info("Firebase image store ready", zap.String("bucket", bucket))
	return &FirebaseStore{client: client, bucket: bucket, logger: logger}, nil
}

func (s *FirebaseStore) Name() string { return config.ImageStoreFirebase }

func (s *FirebaseStore) Save(ctx context.Context, objectName, contentType string, src io.Reader, size int64) (string, error) {
	bucket, err := s.client.Bucket(s.bucket)
	if err != nil {
		return "", fmt.Errorf("error resolving bucket %s: %w", s.bucket, err)
	}

	w := bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	s.logger.Info("Image uploaded", zap.String("bucket", s.bucket), zap.String("object", objectName))
	return FirebasePublicURL(s.bucket, objectName), nil
}

// FirebasePublicURL is the media download URL of an object.
func FirebasePublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.PathEscape(objectName))
}
