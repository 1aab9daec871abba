package main

import (
	"context"
	"log"

	"material_market_backend/internal/config"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/logistics"
	"material_market_backend/internal/platform/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	appLogger, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return appLogger, func() {
		appLogger.Info("Executing cleanup tasks...")
		if err := appLogger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}, nil
}

// provideListingRepository selects the listing store and loads the demo
// catalogue when SEED_DEMO_DATA is on.
func provideListingRepository(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (listing.Repository, error) {
	repo, err := listing.ProvideRepository(cfg, db, logger)
	if err != nil {
		return nil, err
	}
	if cfg.SeedDemoData {
		if err := listing.SeedDemoData(context.Background(), repo, logger); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func provideLogisticsRepository(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (logistics.Repository, error) {
	repo, err := logistics.ProvideRepository(cfg, db, logger)
	if err != nil {
		return nil, err
	}
	if cfg.SeedDemoData {
		if err := logistics.SeedDemoData(context.Background(), repo, logger); err != nil {
			return nil, err
		}
	}
	return repo, nil
}
