package listing

import (
	"context"
	"sort"
	"sync"
	"time"

	"material_market_backend/internal/common"
	"material_market_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository is the listing store contract. FindAll is newest-first.
type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAll(ctx context.Context) ([]Listing, error)
	Replace(ctx context.Context, listing *Listing) error
}

// Seeder loads listings with their existing ids and timestamps into an
// empty store.
type Seeder interface {
	Seed(ctx context.Context, listings []Listing) error
}

type memoryRepository struct {
	mu       sync.RWMutex
	listings []Listing
	now      func() time.Time
}

// NewMemoryRepository creates an in-process listing store.
func NewMemoryRepository() Repository {
	return &memoryRepository{now: func() time.Time { return time.Now().UTC() }}
}

func (r *memoryRepository) Create(ctx context.Context, listing *Listing) error {
	stored := *listing
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.now()

	r.mu.Lock()
	next := make([]Listing, 0, len(r.listings)+1)
	next = append(next, stored)
	next = append(next, r.listings...)
	r.listings = next
	r.mu.Unlock()

	*listing = stored
	return nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.listings {
		if r.listings[i].ID == id {
			found := r.listings[i]
			return &found, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("Listing not found.")
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Listing, len(r.listings))
	copy(out, r.listings)
	return out, nil
}

func (r *memoryRepository) Replace(ctx context.Context, listing *Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.listings {
		if r.listings[i].ID != listing.ID {
			continue
		}
		replacement := *listing
		replacement.CreatedAt = r.listings[i].CreatedAt

		next := make([]Listing, len(r.listings))
		copy(next, r.listings)
		next[i] = replacement
		r.listings = next

		*listing = replacement
		return nil
	}
	return common.ErrNotFound.WithDetails("Listing not found.")
}

func (r *memoryRepository) Seed(ctx context.Context, listings []Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.listings) > 0 {
		return nil
	}
	r.listings = sortNewestFirst(listings)
	return nil
}

// sortNewestFirst orders by createdAt then id, both descending, matching
// the remote store's ORDER BY.
func sortNewestFirst(listings []Listing) []Listing {
	out := make([]Listing, len(listings))
	copy(out, listings)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// ProvideRepository selects the store implementation from STORE_BACKEND.
func ProvideRepository(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (Repository, error) {
	if cfg.StoreBackend == config.BackendPostgres {
		logger.Info("Using postgres listing store", zap.String("table", cfg.ListingsTable))
		return NewGORMRepository(db, cfg.ListingsTable)
	}
	logger.Info("Using in-memory listing store")
	return NewMemoryRepository(), nil
}
