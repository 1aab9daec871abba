package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"material_market_backend/internal/config"
	"material_market_backend/internal/jobs"
	"material_market_backend/internal/market"
	"material_market_backend/internal/middleware"
	"material_market_backend/internal/platform/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	purchaseJanitor *jobs.PurchaseJanitorJob
}

// NewServer creates a new instance of our application server. mk must
// not be nil.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mk *market.Market,
	m *metrics.Metrics,
	purchaseJanitor *jobs.PurchaseJanitorJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Material market API is healthy!"})
	})
	router.GET("/metrics", m.Handler())

	if cfg.ImageStore == config.ImageStoreLocal && strings.HasPrefix(cfg.ImagePublicBaseURL, "/") {
		router.Static(cfg.ImagePublicBaseURL, cfg.ImageStoragePath)
	}

	v1 := router.Group("/api/v1")
	for _, h := range market.NewHandlers(mk, cfg, logger) {
		h.RegisterRoutes(v1)
	}

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		cfg:             cfg,
		logger:          logger,
		purchaseJanitor: purchaseJanitor,
	}, nil
}

// Router exposes the configured engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	if s.purchaseJanitor != nil {
		if err := s.purchaseJanitor.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start purchase session janitor", zap.Error(err))
		}
	} else {
		s.logger.Info("Purchase session janitor is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.purchaseJanitor != nil {
		s.purchaseJanitor.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
