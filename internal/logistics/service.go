package logistics

import (
	"context"
	"encoding/json"

	"material_market_backend/internal/platform/metrics"

	"go.uber.org/zap"
)

// Service defines logistics request business logic. CreateFromPurchase is
// the only creation path.
type Service interface {
	ListRequests(ctx context.Context) ([]Request, error)
	CreateFromPurchase(ctx context.Context, req NewRequest) (*Request, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo      Repository
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewService creates a new logistics service.
func NewService(repo Repository, publisher Publisher, m *metrics.Metrics, logger *zap.Logger) *ServiceImplementation {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &ServiceImplementation{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger.Named("LogisticsService"),
	}
}

func (s *ServiceImplementation) ListRequests(ctx context.Context) ([]Request, error) {
	return s.repo.FindAll(ctx)
}

// CreateFromPurchase stores a new open request and announces it. A failed
// publish is logged and does not undo the stored request.
func (s *ServiceImplementation) CreateFromPurchase(ctx context.Context, req NewRequest) (*Request, error) {
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		s.logger.Error("Failed to create logistics request",
			zap.String("announcementID", req.AnnouncementID), zap.Error(err))
		return nil, err
	}
	s.metrics.LogisticsRequestsTotal.Inc()
	s.logger.Info("Logistics request created",
		zap.String("requestID", created.ID),
		zap.String("announcementID", created.AnnouncementID),
		zap.String("to", created.ToLocation),
	)

	s.publishCreated(*created)
	return created, nil
}

func (s *ServiceImplementation) publishCreated(r Request) {
	payload, err := json.Marshal(CreatedEvent{Request: r})
	if err != nil {
		s.logger.Error("Failed to encode logistics event", zap.String("requestID", r.ID), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(SubjectRequestCreated, payload); err != nil {
		s.logger.Warn("Failed to publish logistics event", zap.String("requestID", r.ID), zap.Error(err))
	}
}
