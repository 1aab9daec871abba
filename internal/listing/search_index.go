package listing

import (
	"context"

	"material_market_backend/internal/listing/esutil"
	platformes "material_market_backend/internal/platform/elasticsearch"
)

const searchResultLimit = 500

// SearchIndex resolves free-text queries to listing ids.
type SearchIndex interface {
	Index(ctx context.Context, l Listing) error
	SearchIDs(ctx context.Context, text string) ([]string, error)
}

type esSearchIndex struct {
	client *platformes.ESClientWrapper
}

// NewSearchIndex returns nil when no Elasticsearch client is configured.
func NewSearchIndex(client *platformes.ESClientWrapper) SearchIndex {
	if client == nil {
		return nil
	}
	return &esSearchIndex{client: client}
}

// ToDocument converts a listing into its search document.
func ToDocument(l Listing) esutil.Document {
	return esutil.Document{
		Title:         l.Title,
		Description:   l.Description,
		Category:      l.Category,
		Location:      l.Location,
		Unit:          l.Unit,
		Quantity:      l.Quantity,
		PricePerUnit:  l.PricePerUnit,
		SellerName:    l.Seller.Name,
		SellerCompany: l.Seller.Company,
		CreatedAt:     l.CreatedAt,
	}
}

func (s *esSearchIndex) Index(ctx context.Context, l Listing) error {
	return esutil.IndexDocument(ctx, s.client, l.ID, ToDocument(l), "false")
}

func (s *esSearchIndex) SearchIDs(ctx context.Context, text string) ([]string, error) {
	return esutil.SearchIDs(ctx, s.client, text, searchResultLimit)
}
