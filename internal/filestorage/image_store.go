package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"material_market_backend/internal/config"
	"material_market_backend/internal/platform/crypto"

	"go.uber.org/zap"
)

const randomSuffixLength = 11

// ErrUnsupportedImage marks uploads rejected before reaching the store.
var ErrUnsupportedImage = errors.New("unsupported image")

// ImageStore persists an uploaded image and returns a displayable
// reference: a public URL or an embedded data URI.
type ImageStore interface {
	Save(ctx context.Context, objectName, contentType string, src io.Reader, size int64) (string, error)
	Name() string
}

// GenerateObjectName builds a collision-resistant name of the form
// <unix-millis>-<random base36><ext>.
func GenerateObjectName(now time.Time, ext string) (string, error) {
	suffix, err := crypto.RandomBase36(randomSuffixLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate object name: %w", err)
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), suffix, ext), nil
}

// ImageExtension keeps the original extension, or infers one from the
// content type when the filename has none.
func ImageExtension(filename, contentType string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(filepath.Base(filename))); ext != "" {
		if !strings.HasPrefix(contentType, "image/") && contentType != "" && contentType != "application/octet-stream" {
			return "", fmt.Errorf("%w: unsupported file type: %s", ErrUnsupportedImage, contentType)
		}
		return ext, nil
	}
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg", nil
	case strings.HasPrefix(contentType, "image/png"):
		return ".png", nil
	case strings.HasPrefix(contentType, "image/gif"):
		return ".gif", nil
	case strings.HasPrefix(contentType, "image/webp"):
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: unsupported file type or missing extension: %s", ErrUnsupportedImage, contentType)
	}
}

// SaveUpload stores a multipart upload under a generated name.
func SaveUpload(ctx context.Context, store ImageStore, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("%w: fileHeader cannot be nil", ErrUnsupportedImage)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	ext, err := ImageExtension(fileHeader.Filename, contentType)
	if err != nil {
		return "", err
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFor(ext)
	}

	name, err := GenerateObjectName(time.Now(), ext)
	if err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return store.Save(ctx, name, contentType, src, fileHeader.Size)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Provide selects the image store from IMAGE_STORE.
func Provide(cfg *config.Config, logger *zap.Logger) (ImageStore, error) {
	log := logger.Named("ImageStore")
	switch cfg.ImageStore {
	case config.ImageStoreLocal:
		store, err := NewFileStorageService(cfg.ImageStoragePath, cfg.ImagePublicBaseURL, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.ImageStoreMinio:
		store, err := NewMinioStore(context.Background(), MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.ImageStoreFirebase:
		store, err := NewFirebaseStore(context.Background(), cfg.FirebaseServiceAccountKeyPath, cfg.FirebaseProjectID, cfg.FirebaseStorageBucket, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		log.Info("Images are embedded as data URIs")
		return NewEmbeddedStore(), nil
	}
}
