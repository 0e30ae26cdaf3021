package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/jobs"
	"folio/internal/logger"
	"folio/internal/portfolio"
	"folio/internal/server"
	"folio/internal/services"
	"folio/internal/validator"

	"github.com/gin-gonic/gin"
)

// @title           Folio API
// @version         1.0
// @description     Folio aggregates stock holdings into a portfolio dashboard: per-holding gain/loss, sector summaries and portfolio totals.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Price feed API key.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Sector taxonomy
	taxonomy, err := portfolio.LoadTaxonomy(appConfig.TaxonomyPath)
	if err != nil {
		return fmt.Errorf("failed to load taxonomy: %w", err)
	}
	if appConfig.OtherSectorLabel != "" {
		taxonomy = portfolio.NewTaxonomy(appConfig.OtherSectorLabel, taxonomy.Sectors, taxonomy.Exchanges)
	}
	log.Infow("Taxonomy loaded",
		"path", appConfig.TaxonomyPath,
		"sectors", len(taxonomy.Sectors),
		"exchanges", len(taxonomy.Exchanges),
		"other_sector", taxonomy.OtherSector,
	)

	// Database
	dbConfig := database.NewConfig(appConfig)
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	marketDataService := services.NewMarketDataService(db, taxonomy)
	aggregator := portfolio.NewAggregator(portfolio.WithTaxonomy(taxonomy))
	portfolioService := services.NewPortfolioService(marketDataService, aggregator)

	// Scheduled jobs
	pruner := jobs.NewPruner(marketDataService, appConfig.SnapshotRetention)
	if err := pruner.Start(appConfig.PruneSchedule); err != nil {
		return err
	}
	defer func() { <-pruner.Stop().Done() }()

	router := server.NewRouter(server.Deps{
		DB:                db,
		MarketDataService: marketDataService,
		PortfolioService:  portfolioService,
		PipelineAPIKey:    appConfig.PipelineAPIKey,
		EnableSwagger:     appConfig.Env != "production",
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Folio server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
