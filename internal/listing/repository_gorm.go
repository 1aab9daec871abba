package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"material_market_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// dbListing is the row shape of the remote listings table. Optional
// columns are nullable and translated to placeholders on read.
type dbListing struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Title         string    `gorm:"column:title;not null"`
	Category      string    `gorm:"column:category;not null;index"`
	Quantity      float64   `gorm:"column:quantity;not null"`
	Unit          string    `gorm:"column:unit;not null"`
	PricePerUnit  float64   `gorm:"column:price_per_unit;not null"`
	Location      string    `gorm:"column:location;not null"`
	ImageURL      *string   `gorm:"column:image_url"`
	Description   *string   `gorm:"column:description"`
	SellerName    *string   `gorm:"column:seller_name"`
	SellerCompany *string   `gorm:"column:seller_company"`
	SellerPhone   *string   `gorm:"column:seller_phone"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

var replaceColumns = []string{
	"title", "category", "quantity", "unit", "price_per_unit", "location",
	"image_url", "description", "seller_name", "seller_company", "seller_phone",
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func fromDomain(l *Listing) dbListing {
	return dbListing{
		ID:            l.ID,
		Title:         l.Title,
		Category:      l.Category,
		Quantity:      l.Quantity,
		Unit:          l.Unit,
		PricePerUnit:  l.PricePerUnit,
		Location:      l.Location,
		ImageURL:      nullable(l.Image),
		Description:   nullable(l.Description),
		SellerName:    nullable(l.Seller.Name),
		SellerCompany: nullable(l.Seller.Company),
		SellerPhone:   nullable(l.Seller.Phone),
		CreatedAt:     l.CreatedAt,
	}
}

func (row dbListing) toDomain() Listing {
	return Listing{
		ID:           row.ID,
		Title:        row.Title,
		Category:     row.Category,
		Description:  orDefault(row.Description, ""),
		Quantity:     row.Quantity,
		Unit:         row.Unit,
		PricePerUnit: row.PricePerUnit,
		Location:     row.Location,
		Image:        orDefault(row.ImageURL, ""),
		Seller: Seller{
			Name:    orDefault(row.SellerName, DefaultSellerName),
			Company: orDefault(row.SellerCompany, DefaultSellerCompany),
			Phone:   orDefault(row.SellerPhone, DefaultSellerPhone),
		},
		CreatedAt: row.CreatedAt,
	}
}

type gormRepository struct {
	db    *gorm.DB
	table string
}

// NewGORMRepository creates the table if needed and returns a store over it.
func NewGORMRepository(db *gorm.DB, table string) (Repository, error) {
	if db == nil {
		return nil, errors.New("listing repository requires a database handle")
	}
	if table == "" {
		table = "announcements"
	}
	if err := db.Table(table).AutoMigrate(&dbListing{}); err != nil {
		return nil, fmt.Errorf("failed to migrate listings table: %w", err)
	}
	ddl := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (created_at DESC)",
		pq.QuoteIdentifier("idx_"+table+"_created_at"), pq.QuoteIdentifier(table))
	if err := db.Exec(ddl).Error; err != nil {
		return nil, fmt.Errorf("failed to create listings created_at index: %w", err)
	}
	return &gormRepository{db: db, table: table}, nil
}

func (r *gormRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create inserts one row and reads it back so the caller sees the stored
// record as translated from the table.
func (r *gormRepository) Create(ctx context.Context, listing *Listing) error {
	row := fromDomain(listing)
	row.ID = uuid.NewString()
	row.CreatedAt = time.Now().UTC()

	if err := r.query(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrConflict.WithDetails("A listing with this id already exists.")
		}
		return fmt.Errorf("failed to create listing: %w", err)
	}

	stored, err := r.FindByID(ctx, row.ID)
	if err != nil {
		return fmt.Errorf("failed to read back created listing: %w", err)
	}
	*listing = *stored
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Listing, error) {
	var row dbListing
	if err := r.query(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, fmt.Errorf("failed to find listing by ID: %w", err)
	}
	l := row.toDomain()
	return &l, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Listing, error) {
	var rows []dbListing
	if err := r.query(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	out := make([]Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *gormRepository) Replace(ctx context.Context, listing *Listing) error {
	row := fromDomain(listing)
	res := r.query(ctx).Where("id = ?", listing.ID).Select(replaceColumns).Updates(&row)
	if res.Error != nil {
		return fmt.Errorf("failed to replace listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Listing not found.")
	}

	stored, err := r.FindByID(ctx, listing.ID)
	if err != nil {
		return err
	}
	*listing = *stored
	return nil
}

func (r *gormRepository) Seed(ctx context.Context, listings []Listing) error {
	var count int64
	if err := r.query(ctx).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count listings: %w", err)
	}
	if count > 0 || len(listings) == 0 {
		return nil
	}
	rows := make([]dbListing, 0, len(listings))
	for i := range listings {
		rows = append(rows, fromDomain(&listings[i]))
	}
	if err := r.query(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}
	return nil
}
