package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"

	"material_market_backend/internal/config"
	"material_market_backend/internal/listing"
	"material_market_backend/internal/listing/esutil"
	"material_market_backend/internal/platform/database"
	platformElasticsearch "material_market_backend/internal/platform/elasticsearch"
	"material_market_backend/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	reindexCmd := flag.NewFlagSet("reindex-listings", flag.ExitOnError)
	batchSize := reindexCmd.Int("batch-size", 100, "Batch size for indexing listings")
	esRefresh := reindexCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")

	if len(os.Args) > 1 && os.Args[1] == "reindex-listings" {
		if err := reindexCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: Invalid flags: %v", err)
		}
		if err := runReindexCommand(*batchSize, *esRefresh); err != nil {
			log.Fatalf("FATAL: Listing reindex failed: %v", err)
		}
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

func runReindexCommand(batchSize int, esRefresh string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if cfg.ElasticsearchURL == "" {
		return fmt.Errorf("ELASTICSEARCH_URL must be set to reindex listings")
	}

	db, closeDB, err := database.Provide(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer closeDB()

	repo, err := listing.ProvideRepository(cfg, db, appLogger)
	if err != nil {
		return err
	}
	if cfg.SeedDemoData {
		if err := listing.SeedDemoData(context.Background(), repo, appLogger); err != nil {
			return err
		}
	}

	esClient, err := platformElasticsearch.Provide(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize Elasticsearch client: %w", err)
	}

	if err := runListingReindex(context.Background(), repo, esClient, appLogger, batchSize, esRefresh); err != nil {
		return err
	}
	appLogger.Info("Listing reindex completed successfully.")
	return nil
}

// runListingReindex pushes every stored listing into the search index in
// batches of batchSize.
func runListingReindex(
	ctx context.Context,
	repo listing.Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	logger *zap.Logger,
	batchSize int,
	esRefresh string,
) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	logger.Info("Starting listing reindex to Elasticsearch...",
		zap.Int("batchSize", batchSize),
		zap.String("esRefreshPolicy", esRefresh),
	)

	listings, err := repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}

	totalIndexed := 0
	totalFailed := 0
	for start, batchNumber := 0, 1; start < len(listings); start, batchNumber = start+batchSize, batchNumber+1 {
		end := start + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		docs := make([]esutil.IDDocument, 0, end-start)
		for _, l := range listings[start:end] {
			docs = append(docs, esutil.IDDocument{ID: l.ID, Doc: listing.ToDocument(l)})
		}

		result, err := esutil.BulkIndex(ctx, esClient, docs, esRefresh)
		if err != nil {
			logger.Error("Bulk request failed", zap.Error(err), zap.Int("batchNumber", batchNumber))
			totalFailed += len(docs)
			continue
		}
		for _, id := range result.Failed {
			logger.Error("Failed to index listing", zap.String("listingID", id))
		}
		totalIndexed += result.Indexed
		totalFailed += len(result.Failed)
		logger.Info("Batch processed.",
			zap.Int("batchNumber", batchNumber),
			zap.Int("indexedInBatch", result.Indexed),
			zap.Int("failedInBatch", len(result.Failed)),
		)
	}

	logger.Info("Listing reindex finished.",
		zap.Int("totalIndexed", totalIndexed),
		zap.Int("totalFailed", totalFailed),
	)
	if totalFailed > 0 {
		return fmt.Errorf("%d listings failed to index", totalFailed)
	}
	return nil
}
