package purchase

import (
	"context"
	"sync"
	"time"

	"material_market_backend/internal/common"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/platform/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingReader looks up the listing a purchase is for.
type ListingReader interface {
	GetListingByID(ctx context.Context, id string) (*listing.Listing, error)
}

// Session is the client view of a workflow.
type Session struct {
	ID        string         `json:"id"`
	ListingID string         `json:"listing_id"`
	Step      Step           `json:"step"`
	Logistics LogisticsInput `json:"logistics"`
	Outcome   *Outcome       `json:"outcome,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Service drives purchase workflows kept in a registry keyed by session id.
type Service interface {
	Start(ctx context.Context, listingID string) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	Proceed(ctx context.Context, sessionID string) (*Session, error)
	SetLogistics(ctx context.Context, sessionID string, in LogisticsInput) (*Session, error)
	ConfirmLogistics(ctx context.Context, sessionID string) (*Session, error)
	Summary(ctx context.Context, sessionID string) (*Summary, error)
	Complete(ctx context.Context, sessionID string) (*Outcome, error)
	Abandon(ctx context.Context, sessionID string) error
	ExpireIdle(ctx context.Context, olderThan time.Duration) int
}

type entry struct {
	mu sync.Mutex
	wf *Workflow
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	listings ListingReader
	requests RequestCreator
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new purchase service with an empty registry.
func NewService(listings ListingReader, requests RequestCreator, m *metrics.Metrics, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		sessions: make(map[string]*entry),
		listings: listings,
		requests: requests,
		metrics:  m,
		logger:   logger.Named("PurchaseService"),
		now:      time.Now,
	}
}

func toSession(w *Workflow) *Session {
	return &Session{
		ID:        w.ID(),
		ListingID: w.ListingID(),
		Step:      w.Step(),
		Logistics: w.Input(),
		Outcome:   w.Outcome(),
		UpdatedAt: w.UpdatedAt(),
	}
}

func (s *ServiceImplementation) lookup(sessionID string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Purchase session not found.")
	}
	return e, nil
}

// with runs fn on the session's workflow while holding its lock.
func (s *ServiceImplementation) with(sessionID string, fn func(w *Workflow) error) (*Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(e.wf); err != nil {
		return nil, err
	}
	e.wf.touch(s.now())
	return toSession(e.wf), nil
}

// Start opens a workflow on the details step. The listing must exist.
func (s *ServiceImplementation) Start(ctx context.Context, listingID string) (*Session, error) {
	l, err := s.listings.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	wf := NewWorkflow(uuid.NewString(), l.ID, s.now())

	s.mu.Lock()
	s.sessions[wf.ID()] = &entry{wf: wf}
	s.mu.Unlock()

	s.metrics.PurchasesStartedTotal.Inc()
	s.metrics.ActivePurchaseSessions.Inc()
	s.logger.Info("Purchase started", zap.String("sessionID", wf.ID()), zap.String("listingID", l.ID))
	return toSession(wf), nil
}

func (s *ServiceImplementation) Get(ctx context.Context, sessionID string) (*Session, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return toSession(e.wf), nil
}

func (s *ServiceImplementation) Proceed(ctx context.Context, sessionID string) (*Session, error) {
	return s.with(sessionID, func(w *Workflow) error { return w.Proceed() })
}

func (s *ServiceImplementation) SetLogistics(ctx context.Context, sessionID string, in LogisticsInput) (*Session, error) {
	return s.with(sessionID, func(w *Workflow) error { return w.SetLogistics(in) })
}

func (s *ServiceImplementation) ConfirmLogistics(ctx context.Context, sessionID string) (*Session, error) {
	return s.with(sessionID, func(w *Workflow) error { return w.ConfirmLogistics() })
}

// Summary is computed from the listing's current values on every call.
func (s *ServiceImplementation) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := s.listings.GetListingByID(ctx, e.wf.ListingID())
	if err != nil {
		return nil, err
	}
	return e.wf.Summary(l)
}

// Complete re-reads the listing so the logistics snapshot carries its
// current title, quantity, unit and location.
func (s *ServiceImplementation) Complete(ctx context.Context, sessionID string) (*Outcome, error) {
	e, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.wf.Step() != StepConfirm {
		return nil, e.wf.expect(StepConfirm)
	}
	l, err := s.listings.GetListingByID(ctx, e.wf.ListingID())
	if err != nil {
		return nil, err
	}
	outcome, err := e.wf.Complete(ctx, l, s.requests)
	if err != nil {
		s.logger.Error("Purchase completion failed", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	e.wf.touch(s.now())

	mode := metrics.ModeSelfManaged
	if outcome.LogisticsRequest != nil {
		mode = metrics.ModeDelegated
	}
	s.metrics.PurchasesCompletedTotal.WithLabelValues(mode).Inc()
	s.logger.Info("Purchase completed", zap.String("sessionID", sessionID), zap.String("mode", mode))
	return outcome, nil
}

// Abandon discards a session. Unknown ids are ignored.
func (s *ServiceImplementation) Abandon(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if ok {
		s.metrics.ActivePurchaseSessions.Dec()
		s.logger.Debug("Purchase abandoned", zap.String("sessionID", sessionID))
	}
	return nil
}

// ExpireIdle drops sessions not touched within olderThan and returns how
// many were removed.
func (s *ServiceImplementation) ExpireIdle(ctx context.Context, olderThan time.Duration) int {
	cutoff := s.now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		idle := e.wf.UpdatedAt().Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.metrics.ActivePurchaseSessions.Sub(float64(removed))
	}
	return removed
}
