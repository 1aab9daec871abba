package market

import (
	"material_market_backend/internal/config"
	"material_market_backend/internal/favorite"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/logistics"
	"material_market_backend/internal/purchase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Market is the process-wide handle on the marketplace services. It is
// built once at startup and passed to whatever needs it.
type Market struct {
	Listings  listing.Service
	Favorites favorite.Service
	Logistics logistics.Service
	Purchases purchase.Service
}

// New assembles the facade. Every service is required.
func New(
	listings listing.Service,
	favorites favorite.Service,
	logisticsService logistics.Service,
	purchases purchase.Service,
) *Market {
	switch {
	case listings == nil:
		panic("market: listing service is required")
	case favorites == nil:
		panic("market: favorite service is required")
	case logisticsService == nil:
		panic("market: logistics service is required")
	case purchases == nil:
		panic("market: purchase service is required")
	}
	return &Market{
		Listings:  listings,
		Favorites: favorites,
		Logistics: logisticsService,
		Purchases: purchases,
	}
}

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// NewHandlers builds the feature handlers over m.
func NewHandlers(m *Market, cfg *config.Config, logger *zap.Logger) []RouteRegistrar {
	if m == nil {
		panic("market: handlers require a Market")
	}
	return []RouteRegistrar{
		listing.NewHandler(m.Listings, logger, cfg),
		favorite.NewHandler(m.Favorites, logger),
		logistics.NewHandler(m.Logistics, logger),
		purchase.NewHandler(m.Purchases, logger),
	}
}
