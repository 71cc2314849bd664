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

	"circles-backend/internal/checkout"
	"circles-backend/internal/client"
	"circles-backend/internal/config"
	"circles-backend/internal/logger"
	"circles-backend/internal/repository"
	"circles-backend/internal/scheduler"
	"circles-backend/internal/seed"
	"circles-backend/internal/server"
	"circles-backend/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "circles-backend: %v\n", err)
		os.Exit(1)
	}
}

// run wires and serves the API until a signal arrives. Failures are returned
// rather than exiting so deferred cleanup still runs.
func run() error {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		File:        cfg.Log.File,
		Development: cfg.Environment.IsDevelopment(),
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	returnRate, err := cfg.Investment.Rate()
	if err != nil {
		return err
	}

	db, err := client.InitDBClient(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()

	receiptCache := repository.NewMemoryReceiptCache()
	if cfg.Redis.Addr != "" {
		rdb, err := client.InitRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer rdb.Close()
		receiptCache = repository.NewRedisReceiptCache(rdb, cfg.Redis.ReceiptTTL)
	}

	var gateway checkout.Gateway
	switch cfg.Gateway.Provider {
	case "braintree":
		gateway = checkout.NewBraintreeGateway(client.NewBraintreeClient(&cfg.BrainTree))
	default:
		gateway = checkout.NewMockGateway(cfg.Investment.ProcessingDelay)
	}
	logger.Info("payment gateway: %s", cfg.Gateway.Provider)

	repos := service.AdminRepositories{
		Projects:    repository.NewProjectRepository(db),
		Merchandise: repository.NewMerchandiseRepository(db),
		Perks:       repository.NewPerkRepository(db),
		Media:       repository.NewMediaRepository(db),
		Users:       repository.NewUserRepository(db),
		Posts:       repository.NewPostRepository(db),
		Messages:    repository.NewChannelMessageRepository(db),
		Logs:        repository.NewActivityLogRepository(db),
		Backups:     repository.NewBackupRepository(db),
	}
	tiers := checkout.DefaultTiers()

	adminService := service.NewAdminService(db, repos)
	catalogService := service.NewCatalogService(repos.Projects, repos.Perks, repos.Merchandise, tiers, returnRate)
	communityService := service.NewCommunityService(db, repos.Posts, repos.Messages, repos.Users)
	investmentService := service.NewInvestmentService(
		db,
		repos.Projects,
		repository.NewReceiptRepository(db),
		repos.Users,
		receiptCache,
		gateway,
		service.InvestmentOptions{
			Limits: checkout.Limits{
				MinimumInvestment: cfg.Investment.MinAmount,
				MaximumInvestment: cfg.Investment.MaxAmount,
			},
			Tiers:          tiers,
			ReturnRate:     returnRate,
			DisplayTimeout: cfg.Investment.DisplayTimeout,
			SessionTTL:     cfg.Investment.SessionTTL,
		},
	)
	defer investmentService.Shutdown()

	if cfg.Seed.OnStart {
		data, err := seed.Load()
		if err != nil {
			return fmt.Errorf("load seed data: %w", err)
		}
		if _, err := adminService.Seed(ctx, data); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	jobs, err := scheduler.NewManager()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	for _, job := range []scheduler.Job{
		scheduler.NewSessionSweepJob(investmentService, cfg.Scheduler.SweepInterval),
		scheduler.NewBackupJob(adminService, cfg.Scheduler.BackupInterval),
	} {
		if err := jobs.Register(job); err != nil {
			return err
		}
	}
	jobs.Start()
	defer jobs.Stop()

	srv := server.NewServer(server.Services{
		Catalog:    catalogService,
		Investment: investmentService,
		Community:  communityService,
		Admin:      adminService,
	})

	serverAddr := cfg.HTTP.Address()
	logger.Info("starting HTTP server on %s (%s)", serverAddr, cfg.BaseURL)
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	var runErr error
	select {
	case <-sigChan:
		logger.Info("signal received, starting graceful shutdown")
	case err := <-serveErr:
		logger.Error("HTTP server error: %v", err)
		runErr = fmt.Errorf("serve http: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown: %v", err)
	}
	logger.Info("shutdown complete")
	return runErr
}
