package logistics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// DemoRequests returns the sample freight requests shown on a fresh store.
func DemoRequests() []Request {
	return []Request{
		{
			ID: "log1", AnnouncementID: "1", Material: "Beton Bloklar M200",
			Quantity: 300, Unit: "ədəd", FromLocation: "Ağdam", ToLocation: "Bakı",
			OfferedPrice: 450, Status: StatusOpen, CreatedAt: day("2024-12-24"),
		},
		{
			ID: "log2", AnnouncementID: "2", Material: "Armatur Polad 12mm",
			Quantity: 1500, Unit: "metr", FromLocation: "Bakı", ToLocation: "Gəncə",
			OfferedPrice: 320, Status: StatusOpen, CreatedAt: day("2024-12-24"),
		},
		{
			ID: "log3", AnnouncementID: "4", Material: "Portland Sement M400",
			Quantity: 800, Unit: "kisə", FromLocation: "Sumqayıt", ToLocation: "Şəki",
			OfferedPrice: 680, Status: StatusOpen, CreatedAt: day("2024-12-23"),
		},
		{
			ID: "log4", AnnouncementID: "5", Material: "PVC Kanalizasiya Borusu",
			Quantity: 500, Unit: "metr", FromLocation: "Gəncə", ToLocation: "Lənkəran",
			OfferedPrice: 280, Status: StatusAccepted, CreatedAt: day("2024-12-22"),
		},
		{
			ID: "log5", AnnouncementID: "6", Material: "Keramik Döşəmə Kafelləri",
			Quantity: 600, Unit: "m²", FromLocation: "Bakı", ToLocation: "Mingəçevir",
			OfferedPrice: 520, Status: StatusOpen, CreatedAt: day("2024-12-25"),
		},
	}
}

// SeedDemoData loads DemoRequests into repo when it supports seeding and
// is empty.
func SeedDemoData(ctx context.Context, repo Repository, logger *zap.Logger) error {
	seeder, ok := repo.(Seeder)
	if !ok {
		logger.Warn("Logistics store does not support seeding, skipping demo data")
		return nil
	}
	if err := seeder.Seed(ctx, DemoRequests()); err != nil {
		return err
	}
	logger.Info("Demo logistics requests seeded", zap.Int("count", len(DemoRequests())))
	return nil
}
