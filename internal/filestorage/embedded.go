package filestorage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"material_market_backend/internal/config"
)

type embeddedStore struct{}

// NewEmbeddedStore returns a store that inlines images as data URIs.
func NewEmbeddedStore() ImageStore {
	return embeddedStore{}
}

func (embeddedStore) Name() string { return config.ImageStoreEmbedded }

func (embeddedStore) Save(ctx context.Context, objectName, contentType string, src io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
