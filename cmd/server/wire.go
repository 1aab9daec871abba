//go:build wireinject
// +build wireinject

package main

import (
	"material_market_backend/internal/app"
	"material_market_backend/internal/config"
	"material_market_backend/internal/favorite"
	"material_market_backend/internal/filestorage"
	"material_market_backend/internal/jobs"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/logistics"
	"material_market_backend/internal/market"
	"material_market_backend/internal/platform/database"
	"material_market_backend/internal/platform/elasticsearch"
	"material_market_backend/internal/platform/metrics"
	"material_market_backend/internal/platform/nats"
	"material_market_backend/internal/platform/redis"
	"material_market_backend/internal/purchase"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		metrics.Provide,
		database.Provide,
		redis.Provide,
		nats.Provide,
		elasticsearch.Provide,
		filestorage.Provide,

		// Listings
		provideListingRepository,
		listing.NewSearchIndex,
		listing.NewService,
		wire.Bind(new(listing.Service), new(*listing.ServiceImplementation)),
		wire.Bind(new(favorite.ListingSource), new(*listing.ServiceImplementation)),
		wire.Bind(new(purchase.ListingReader), new(*listing.ServiceImplementation)),

		// Favorites
		favorite.ProvideSet,
		favorite.NewService,
		wire.Bind(new(favorite.Service), new(*favorite.ServiceImplementation)),

		// Logistics
		provideLogisticsRepository,
		logistics.ProvidePublisher,
		logistics.NewService,
		wire.Bind(new(logistics.Service), new(*logistics.ServiceImplementation)),
		wire.Bind(new(purchase.RequestCreator), new(*logistics.ServiceImplementation)),

		// Purchases
		purchase.NewService,
		wire.Bind(new(purchase.Service), new(*purchase.ServiceImplementation)),
		wire.Bind(new(jobs.SessionExpirer), new(*purchase.ServiceImplementation)),
		jobs.NewPurchaseJanitorJob,

		// Application Layer
		market.New,
		app.NewServer,
	)
	return nil, nil, nil
}
