package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"material_market_backend/internal/config"

	"go.uber.org/zap"
)

// FileStorageService stores images on local disk and serves them from
// publicBaseURL.
type FileStorageService struct {
	storagePath   string
	publicBaseURL string
	logger        *zap.Logger
}

// NewFileStorageService creates a new FileStorageService.
func NewFileStorageService(storagePath, publicBaseURL string, logger *zap.Logger) (*FileStorageService, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("FileStorageService initialized", zap.String("storagePath", storagePath))
	return &FileStorageService{
		storagePath:   storagePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

func (s *FileStorageService) Name() string { return config.ImageStoreLocal }

// StoragePath is the directory images are written to.
func (s *FileStorageService) StoragePath() string { return s.storagePath }

// Save writes src under objectName and returns its public URL.
func (s *FileStorageService) Save(ctx context.Context, objectName, contentType string, src io.Reader, size int64) (string, error) {
	clean := filepath.Base(filepath.Clean(objectName))
	if clean != objectName || strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("invalid object name %q", objectName)
	}

	destinationPath := filepath.Join(s.storagePath, clean)
	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("File saved successfully", zap.String("path", destinationPath))
	return s.publicBaseURL + "/" + clean, nil
}
