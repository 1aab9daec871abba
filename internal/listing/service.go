package listing

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"material_market_backend/internal/common"
	"material_market_backend/internal/filestorage"
	"material_market_backend/internal/platform/metrics"

	"go.uber.org/zap"
)

// Service defines listing business logic.
type Service interface {
	CreateListing(ctx context.Context, req CreateListingRequest) (*Listing, error)
	GetListingByID(ctx context.Context, id string) (*Listing, error)
	AllListings(ctx context.Context) ([]Listing, error)
	SearchListings(ctx context.Context, query SearchQuery) ([]Listing, error)
	ReplaceListing(ctx context.Context, id string, req CreateListingRequest) (*Listing, error)
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo       Repository
	index      SearchIndex
	imageStore filestorage.ImageStore
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewService creates a new listing service. index may be nil.
func NewService(
	repo Repository,
	index SearchIndex,
	imageStore filestorage.ImageStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:       repo,
		index:      index,
		imageStore: imageStore,
		metrics:    m,
		logger:     logger.Named("ListingService"),
	}
}

// fromRequest applies the creation defaults: category normalization,
// placeholder seller details and the category's stock image.
func fromRequest(req CreateListingRequest) Listing {
	l := Listing{
		Title:       req.Title,
		Category:    NormalizeCategory(req.Category),
		Description: req.Description,
		Unit:        req.Unit,
		Location:    req.Location,
		Image:       strings.TrimSpace(req.Image),
		Seller: Seller{
			Name:    defaultIfBlank(req.Seller.Name, DefaultSellerName),
			Company: defaultIfBlank(req.Seller.Company, DefaultSellerCompany),
			Phone:   defaultIfBlank(req.Seller.Phone, DefaultSellerPhone),
		},
	}
	if req.Quantity != nil {
		l.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		l.PricePerUnit = *req.PricePerUnit
	}
	if l.Image == "" {
		l.Image = DefaultImageFor(l.Category)
	}
	return l
}

func defaultIfBlank(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// CreateListing stores a new listing. Quantity and price are stored as
// given.
func (s *ServiceImplementation) CreateListing(ctx context.Context, req CreateListingRequest) (*Listing, error) {
	l := fromRequest(req)
	if err := s.repo.Create(ctx, &l); err != nil {
		s.logger.Error("Failed to create listing", zap.Error(err))
		return nil, err
	}
	s.metrics.ListingsCreatedTotal.Inc()
	s.logger.Info("Listing created", zap.String("listingID", l.ID), zap.String("category", l.Category))

	s.indexListing(ctx, l)
	return &l, nil
}

func (s *ServiceImplementation) indexListing(ctx context.Context, l Listing) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, l); err != nil {
		s.logger.Warn("Failed to index listing", zap.String("listingID", l.ID), zap.Error(err))
	}
}

func (s *ServiceImplementation) GetListingByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImplementation) AllListings(ctx context.Context) ([]Listing, error) {
	return s.repo.FindAll(ctx)
}

// SearchListings filters the store contents, keeping store order. Free text
// always uses the substring predicate; index hits only add listings it
// missed. On index failure the substring predicate is used alone.
func (s *ServiceImplementation) SearchListings(ctx context.Context, query SearchQuery) ([]Listing, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.index == nil || !query.HasText() {
		return Filter(all, query), nil
	}

	ids, err := s.index.SearchIDs(ctx, query.Q)
	if err != nil {
		s.logger.Warn("Search index query failed, using substring match", zap.Error(err))
		return Filter(all, query), nil
	}
	hit := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		hit[id] = struct{}{}
	}
	out := make([]Listing, 0, len(all))
	for _, l := range all {
		if !query.Matches(l) {
			continue
		}
		if _, ok := hit[l.ID]; ok || query.MatchesText(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// ReplaceListing swaps the listing's contents wholesale, keeping id and
// createdAt.
func (s *ServiceImplementation) ReplaceListing(ctx context.Context, id string, req CreateListingRequest) (*Listing, error) {
	l := fromRequest(req)
	l.ID = id
	if err := s.repo.Replace(ctx, &l); err != nil {
		return nil, err
	}
	s.logger.Info("Listing replaced", zap.String("listingID", id))
	s.indexListing(ctx, l)
	return &l, nil
}

func (s *ServiceImplementation) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	ref, err := filestorage.SaveUpload(ctx, s.imageStore, fileHeader)
	if err != nil {
		if errors.Is(err, filestorage.ErrUnsupportedImage) {
			return "", common.ErrBadRequest.WithDetails(err.Error())
		}
		s.logger.Error("Image upload failed", zap.String("store", s.imageStore.Name()), zap.Error(err))
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	s.metrics.ImagesUploadedTotal.WithLabelValues(s.imageStore.Name()).Inc()
	return ref, nil
}
