package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gavel-auction-service/internal/adapters/broadcaster"
	"gavel-auction-service/internal/adapters/db"
	"gavel-auction-service/internal/adapters/httpapi"
	"gavel-auction-service/internal/adapters/redis"
	"gavel-auction-service/internal/adapters/ws"
	"gavel-auction-service/internal/app"
	"gavel-auction-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Gavel Auction Service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close(dbConn)

	if err := db.Migrate(dbConn); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	log.Info().Msg("Database connection established")

	// Create repositories
	auctionRepo := db.NewAuctionRepository(dbConn)
	bidRepo := db.NewBidRepository(dbConn)
	notificationRepo := db.NewNotificationRepository(dbConn)
	userRepo := db.NewUserRepository(dbConn)

	log.Info().Msg("Database repositories initialized")

	// Create Redis client
	redisClient := redis.NewClient(cfg)
	if err := redis.PingRedis(redisClient, cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	// Create Redis broadcaster
	redisBroadcaster := broadcaster.NewBroadcaster(broadcaster.RedisBroadcasterParams{
		RedisClient: redisClient,
		Logger:      log.Logger,
	})
	log.Info().Msg("Redis broadcaster initialized")

	// Create business services
	notificationService := app.NewNotificationService(app.NotificationServiceParams{
		NotificationRepo: notificationRepo,
		BidRepo:          bidRepo,
		Publisher:        redisBroadcaster,
		Logger:           log.Logger,
	})
	auctionService := app.NewAuctionService(app.AuctionServiceParams{
		AuctionRepo: auctionRepo,
		UserRepo:    userRepo,
		Notifier:    notificationService,
		Logger:      log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		BidRepo:     bidRepo,
		AuctionRepo: auctionRepo,
		Publisher:   redisBroadcaster,
		Logger:      log.Logger,
	})
	userService := app.NewUserService(app.UserServiceParams{
		UserRepo: userRepo,
		Logger:   log.Logger,
	})

	log.Info().Msg("Business services initialized")

	wsHandler := ws.NewHandler(ws.HandlerParams{
		Config:     cfg,
		Subscriber: redisBroadcaster,
		Logger:     log.Logger,
	})

	router := httpapi.NewRouter(httpapi.RouterParams{
		Auctions:      auctionService,
		Bids:          bidService,
		Notifications: notificationService,
		Users:         userService,
		Verifier:      httpapi.NewTokenVerifier(cfg),
		WSHandler:     wsHandler,
		Logger:        log.Logger,
	})

	httpServer := httpapi.NewServer(httpapi.ServerParams{
		Config: cfg,
		Router: router,
		Logger: log.Logger,
	})

	log.Info().Msg("HTTP server initialized")

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	// Drain in-flight notification dispatches before closing the broadcaster
	notificationService.Close()
	log.Info().Msg("Notification dispatch pool drained")

	redisBroadcaster.Close()
	log.Info().Msg("Redis broadcaster closed")

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
