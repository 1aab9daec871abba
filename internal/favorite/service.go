package favorite

import (
	"context"

	"material_market_backend/internal/listing"
	"material_market_backend/internal/platform/metrics"

	"go.uber.org/zap"
)

// ListingSource is the read side of the listing store the favorites view
// is derived from.
type ListingSource interface {
	AllListings(ctx context.Context) ([]listing.Listing, error)
}

// Status reports a listing id's membership.
type Status struct {
	ListingID string `json:"listing_id"`
	Favorite  bool   `json:"favorite"`
}

// Service defines favorites business logic.
type Service interface {
	Toggle(ctx context.Context, listingID string) (*Status, error)
	IsFavorite(ctx context.Context, listingID string) (*Status, error)
	FavoritedListings(ctx context.Context) ([]listing.Listing, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	set      Set
	listings ListingSource
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewService creates a new favorites service.
func NewService(set Set, listings ListingSource, m *metrics.Metrics, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		set:      set,
		listings: listings,
		metrics:  m,
		logger:   logger.Named("FavoriteService"),
	}
}

func (s *ServiceImplementation) Toggle(ctx context.Context, listingID string) (*Status, error) {
	member, err := s.set.Toggle(ctx, listingID)
	if err != nil {
		s.logger.Error("Failed to toggle favorite", zap.String("listingID", listingID), zap.Error(err))
		return nil, err
	}
	result := "removed"
	if member {
		result = "added"
	}
	s.metrics.FavoriteTogglesTotal.WithLabelValues(result).Inc()
	s.logger.Debug("Favorite toggled", zap.String("listingID", listingID), zap.Bool("favorite", member))
	return &Status{ListingID: listingID, Favorite: member}, nil
}

func (s *ServiceImplementation) IsFavorite(ctx context.Context, listingID string) (*Status, error) {
	member, err := s.set.IsFavorite(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return &Status{ListingID: listingID, Favorite: member}, nil
}

// FavoritedListings filters the current listings by membership, keeping
// listing store order. Ids without a listing are skipped.
func (s *ServiceImplementation) FavoritedListings(ctx context.Context) ([]listing.Listing, error) {
	ids, err := s.set.IDs(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.listings.AllListings(ctx)
	if err != nil {
		return nil, err
	}
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}
	out := make([]listing.Listing, 0, len(ids))
	for _, l := range all {
		if _, ok := members[l.ID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}
