package logistics

import (
	"context"
	"sort"
	"sync"
	"time"

	"material_market_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository is the append-only logistics request store. FindAll is
// newest-first.
type Repository interface {
	Create(ctx context.Context, req NewRequest) (*Request, error)
	FindAll(ctx context.Context) ([]Request, error)
}

// Seeder loads requests with their existing ids, statuses and timestamps
// into an empty store.
type Seeder interface {
	Seed(ctx context.Context, requests []Request) error
}

type memoryRepository struct {
	mu       sync.RWMutex
	requests []Request
	now      func() time.Time
}

// NewMemoryRepository creates an in-process logistics request store.
func NewMemoryRepository() Repository {
	return &memoryRepository{now: func() time.Time { return time.Now().UTC() }}
}

func newRecord(in NewRequest, now time.Time) Request {
	return Request{
		ID:             uuid.NewString(),
		AnnouncementID: in.AnnouncementID,
		Material:       in.Material,
		Quantity:       in.Quantity,
		Unit:           in.Unit,
		FromLocation:   in.FromLocation,
		ToLocation:     in.ToLocation,
		OfferedPrice:   in.OfferedPrice,
		Status:         StatusOpen,
		CreatedAt:      now,
	}
}

func (r *memoryRepository) Create(ctx context.Context, in NewRequest) (*Request, error) {
	stored := newRecord(in, r.now())

	r.mu.Lock()
	next := make([]Request, 0, len(r.requests)+1)
	next = append(next, stored)
	next = append(next, r.requests...)
	r.requests = next
	r.mu.Unlock()

	return &stored, nil
}

func (r *memoryRepository) FindAll(ctx context.Context) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out, nil
}

func (r *memoryRepository) Seed(ctx context.Context, requests []Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) > 0 {
		return nil
	}
	out := make([]Request, len(requests))
	copy(out, requests)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	r.requests = out
	return nil
}

// ProvideRepository selects the store implementation from STORE_BACKEND.
func ProvideRepository(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (Repository, error) {
	if cfg.StoreBackend == config.BackendPostgres {
		logger.Info("Using postgres logistics request store")
		return NewGORMRepository(db)
	}
	logger.Info("Using in-memory logistics request store")
	return NewMemoryRepository(), nil
}
