package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dtroode/bookswap-agent/internal/api/grpc/handler"
	"github.com/dtroode/bookswap-agent/internal/api/grpc/router"
	grpcServer "github.com/dtroode/bookswap-agent/internal/api/grpc/server"
	"github.com/dtroode/bookswap-agent/internal/bookstore"
	"github.com/dtroode/bookswap-agent/internal/config"
	"github.com/dtroode/bookswap-agent/internal/credential/file"
	"github.com/dtroode/bookswap-agent/internal/credential/memory"
	"github.com/dtroode/bookswap-agent/internal/logger"
	"github.com/dtroode/bookswap-agent/internal/metrics"
	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/repository/postgres"
	"github.com/dtroode/bookswap-agent/internal/server"
	"github.com/dtroode/bookswap-agent/internal/service"
	"github.com/dtroode/bookswap-agent/internal/session"
	memstorage "github.com/dtroode/bookswap-agent/internal/storage/memory"
	storage "github.com/dtroode/bookswap-agent/internal/storage/minio"
	"github.com/dtroode/bookswap-agent/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	store, closeStore := newCredentialStore(ctx, cfg, logger)
	defer closeStore()

	resolver := session.NewResolver(store, token.NewJWT(), logger).WithRecorder(collector)

	api := bookstore.NewClient(cfg.API.BaseURL, logger,
		bookstore.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		bookstore.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
		bookstore.WithRecorder(collector),
	)

	staging := newStaging(ctx, cfg, logger)

	coordinator := service.NewCoordinator(resolver, api, api, logger, cfg.CartConflictRefetch)
	catalog := service.NewCatalog(api, logger)
	services := handler.Services{
		Session:     service.NewSession(resolver, coordinator),
		Coordinator: coordinator,
		Cart:        service.NewCart(resolver, api, logger),
		Wishlist:    service.NewWishlist(resolver, api, catalog, coordinator, logger),
		Catalog:     catalog,
		Order:       service.NewOrder(resolver, api, coordinator, logger),
		Profile:     service.NewProfile(resolver, api, logger),
		Donation:    service.NewDonation(resolver, api, staging, logger),
	}

	servers := []model.Server{
		grpcServer.NewGRPCServer(router.New(services, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}
	if cfg.MetricsAddr != "" {
		servers = append(servers, server.NewHTTPServer(cfg.MetricsAddr, metrics.NewRouter(registry)))
	}

	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	plain := server.NewPlainListener()

	var wg sync.WaitGroup
	for i, s := range servers {
		layer := sl
		if i > 0 {
			layer = plain
		}
		wg.Add(1)
		go func(s model.Server, layer model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(layer); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s, layer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newCredentialStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.CredentialStore, func()) {
	switch cfg.Credential.Backend {
	case config.BackendMemory:
		return memory.NewStore(), func() {}
	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize credential database", "error", err)
		}
		return postgres.NewCredentialRepository(db, cfg.Credential.Profile), func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close credential database", "error", err)
			}
		}
	default:
		path, err := cfg.CredentialPath()
		if err != nil {
			logger.Fatal("failed to resolve credential path", "error", err)
		}
		return file.NewStore(path), func() {}
	}
}

func newStaging(ctx context.Context, cfg *config.Config, logger *logger.Logger) model.Storage {
	if !cfg.Storage.Enabled {
		logger.Info("object storage disabled, staging donations in memory")
		return memstorage.NewStorage()
	}

	stage, err := storage.NewStage(ctx, storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}
	return stage
}
