package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/api/server"
	"github.com/feral-file/ff-boxoffice/internal/authz"
	"github.com/feral-file/ff-boxoffice/internal/boxoffice"
	"github.com/feral-file/ff-boxoffice/internal/config"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/providers/ethereum"
	"github.com/feral-file/ff-boxoffice/internal/ratelimit"
	"github.com/feral-file/ff-boxoffice/internal/settlement"
	"github.com/feral-file/ff-boxoffice/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Box Office API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()

	// Resolve authorization mode
	mode := authz.Mode(cfg.Settlement.Mode)
	if !authz.IsValidMode(mode) {
		logger.FatalCtx(ctx, "Invalid settlement mode", zap.String("mode", cfg.Settlement.Mode))
	}
	if mode == authz.ModeSigned && cfg.Authorization.TrustedSigner == "" {
		logger.FatalCtx(ctx, "Signed mode requires authorization.trusted_signer")
	}

	verifier := authz.NewVerifier(authz.Config{
		DomainName:    cfg.Authorization.DomainName,
		ChainID:       cfg.Authorization.ChainID,
		TrustedSigner: common.HexToAddress(cfg.Authorization.TrustedSigner),
	}, clock, jcsAdapter, jsonAdapter)

	// Connect to the payout node
	if cfg.Payout.RPCURL == "" {
		logger.FatalCtx(ctx, "Payout RPC URL not configured")
	}
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Payout.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum node", zap.Error(err), zap.String("rpc_url", cfg.Payout.RPCURL))
	}
	defer ethClient.Close()

	tokenAddresses := map[domain.Currency]string{}
	if cfg.Payout.USDCTokenAddress != "" {
		tokenAddresses[domain.CurrencyUSDC] = cfg.Payout.USDCTokenAddress
	}
	transferClient, err := ethereum.NewClient(ethereum.Config{
		ChainID:        cfg.Payout.ChainID,
		PrivateKeyHex:  cfg.Payout.PrivateKey,
		TokenAddresses: tokenAddresses,
		ConfirmTimeout: cfg.Payout.ConfirmTimeout,
	}, ethClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize payout client", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum node",
		zap.Int64("chain_id", cfg.Payout.ChainID),
		zap.String("rpc_url", cfg.Payout.RPCURL),
	)

	// Create domain services
	engine := settlement.NewEngine(settlement.Config{
		Mode:     mode,
		Cooldown: cfg.Settlement.Cooldown,
	}, dataStore, verifier, transferClient, clock)

	box := boxoffice.NewService(boxoffice.Config{
		Mode:     mode,
		Cooldown: cfg.Settlement.Cooldown,
	}, dataStore, verifier, clock)

	// Create the ingress rate limiter backed by redis
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	limiter, err := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerSecond:       cfg.RateLimit.RequestsPerSecond,
		Burst:                   cfg.RateLimit.Burst,
		RedisKeyPrefix:          cfg.RateLimit.RedisKeyPrefix,
		EnableLocalFallback:     cfg.RateLimit.EnableLocalFallback,
		LocalFallbackMultiplier: cfg.RateLimit.LocalFallbackMultiplier,
		HealthCheckInterval:     cfg.RateLimit.HealthCheckInterval,
	}, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
	}
	defer func() {
		if err := limiter.Close(); err != nil {
			logger.Error(err, zap.String("component", "rate_limiter"))
		}
	}()

	if cfg.Auth.JWTSecret == "" {
		logger.WarnCtx(ctx, "JWT secret not configured, authenticated routes will reject all requests")
	}

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		JWTSecret:    cfg.Auth.JWTSecret,
	}

	// Create and start server
	srv := server.New(serverConfig, box, engine, limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
