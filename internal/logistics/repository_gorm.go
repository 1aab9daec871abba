package logistics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// dbRequest is the row shape of the logistics_requests table.
type dbRequest struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	AnnouncementID string    `gorm:"column:announcement_id;not null;index"`
	Material       string    `gorm:"column:material;not null"`
	Quantity       float64   `gorm:"column:quantity;not null"`
	Unit           string    `gorm:"column:unit;not null"`
	FromLocation   string    `gorm:"column:from_location;not null"`
	ToLocation     string    `gorm:"column:to_location;not null"`
	OfferedPrice   float64   `gorm:"column:offered_price;not null"`
	Status         string    `gorm:"column:status;not null;type:varchar(20)"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
}

func (dbRequest) TableName() string { return "logistics_requests" }

func fromDomain(r Request) dbRequest {
	return dbRequest{
		ID:             r.ID,
		AnnouncementID: r.AnnouncementID,
		Material:       r.Material,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		FromLocation:   r.FromLocation,
		ToLocation:     r.ToLocation,
		OfferedPrice:   r.OfferedPrice,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
	}
}

func (row dbRequest) toDomain() Request {
	status := Status(row.Status)
	if !status.Valid() {
		status = StatusOpen
	}
	return Request{
		ID:             row.ID,
		AnnouncementID: row.AnnouncementID,
		Material:       row.Material,
		Quantity:       row.Quantity,
		Unit:           row.Unit,
		FromLocation:   row.FromLocation,
		ToLocation:     row.ToLocation,
		OfferedPrice:   row.OfferedPrice,
		Status:         status,
		CreatedAt:      row.CreatedAt,
	}
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository migrates logistics_requests and returns a store over it.
func NewGORMRepository(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, errors.New("logistics repository requires a database handle")
	}
	if err := db.AutoMigrate(&dbRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate logistics_requests table: %w", err)
	}
	return &gormRepository{db: db}, nil
}

func (r *gormRepository) Create(ctx context.Context, in NewRequest) (*Request, error) {
	row := fromDomain(newRecord(in, time.Now().UTC()))
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create logistics request: %w", err)
	}
	stored := row.toDomain()
	return &stored, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Request, error) {
	var rows []dbRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list logistics requests: %w", err)
	}
	out := make([]Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *gormRepository) Seed(ctx context.Context, requests []Request) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&dbRequest{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count logistics requests: %w", err)
	}
	if count > 0 || len(requests) == 0 {
		return nil
	}
	rows := make([]dbRequest, 0, len(requests))
	for _, req := range requests {
		rows = append(rows, fromDomain(req))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed logistics requests: %w", err)
	}
	return nil
}
