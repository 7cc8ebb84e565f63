package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custodial-vault-platform/config"
	httpHandler "custodial-vault-platform/internal/adapter/http/handler"
	pgStorage "custodial-vault-platform/internal/adapter/storage/postgres"
	redisStorage "custodial-vault-platform/internal/adapter/storage/redis"
	"custodial-vault-platform/internal/core/ports"
	"custodial-vault-platform/internal/service"
	"custodial-vault-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Custodial Vault Platform")

	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	workspaceRepo := pgStorage.NewWorkspaceRepo(pool)
	vaultRepo := pgStorage.NewVaultAccountRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	addressRepo := pgStorage.NewAddressRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	settingsRepo := pgStorage.NewSettingsRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Notification bus over Redis pub/sub
	bus := redisStorage.NewNotificationBus(rdb)

	// Initialize core services
	chainSvc := service.NewChainSimService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	workspaceSvc := service.NewWorkspaceService(workspaceRepo, hashSvc, tokenSvc, log)
	ledgerSvc := service.NewLedgerService(walletRepo, transactor, log)
	ownershipSvc := service.NewOwnershipService(addressRepo, log)
	vaultSvc := service.NewVaultService(vaultRepo, walletRepo, addressRepo, chainSvc, bus, log)
	transferSvc := service.NewTransferService(
		txRepo,
		walletRepo,
		vaultRepo,
		addressRepo,
		ledgerSvc,
		ownershipSvc,
		chainSvc,
		bus,
		transactor,
		cfg.Ledger.MinConfirmations,
		log,
	)
	transitionSvc := service.NewTransitionService(txRepo, ledgerSvc, bus, transactor, log)

	// Auto-transition driver
	autopilot := service.NewAutopilotService(
		txRepo,
		settingsRepo,
		ledgerSvc,
		chainSvc,
		bus,
		transactor,
		cfg.Ledger.AutopilotInterval,
		cfg.Ledger.MinConfirmations,
		log,
	)
	autopilotCtx, stopAutopilot := context.WithCancel(ctx)
	defer stopAutopilot()
	go autopilot.Run(autopilotCtx)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.NewRouter(httpHandler.RouterDeps{
		WorkspaceSvc:   workspaceSvc,
		VaultSvc:       vaultSvc,
		TransferSvc:    transferSvc,
		TransitionSvc:  transitionSvc,
		OwnershipSvc:   ownershipSvc,
		TxRepo:         txRepo,
		SettingsRepo:   settingsRepo,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopAutopilot()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
