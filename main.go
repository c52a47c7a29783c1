package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Koshercash/Sports-Queue-sub000/internal/config"
	"github.com/Koshercash/Sports-Queue-sub000/internal/database"
	"github.com/Koshercash/Sports-Queue-sub000/internal/fields"
	"github.com/Koshercash/Sports-Queue-sub000/internal/games"
	server "github.com/Koshercash/Sports-Queue-sub000/internal/http"
	"github.com/Koshercash/Sports-Queue-sub000/internal/lifecycle"
	"github.com/Koshercash/Sports-Queue-sub000/internal/metrics"
	"github.com/Koshercash/Sports-Queue-sub000/internal/penalty"
	"github.com/Koshercash/Sports-Queue-sub000/internal/players"
	"github.com/Koshercash/Sports-Queue-sub000/internal/pubsub"
	"github.com/Koshercash/Sports-Queue-sub000/internal/queue"
	"github.com/Koshercash/Sports-Queue-sub000/internal/scheduler"
	"github.com/charmbracelet/log"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	playerStore := players.New(db)
	fieldIndex := fields.New(db)
	gameStore := games.New(db)
	queueStore := queue.NewStore(db)
	ledger := penalty.New(db)

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	pubsubClient := pubsub.New(cfg.ProjectID)

	schedCfg := scheduler.DefaultConfig()
	schedCfg.InitialRadiusKm = cfg.Matchmaking.InitialRadiusKm
	schedCfg.MaxRadiusKm = cfg.Matchmaking.MaxRadiusKm
	schedCfg.TravelSpeedKmh = cfg.Matchmaking.TravelSpeedKmh
	sched := scheduler.New(fieldIndex, gameStore, schedCfg)

	queueMgr := queue.NewManager(queueStore, playerStore, fieldIndex, gameStore, sched, metricsSvc, pubsubClient, cfg.Matchmaking.GameDuration)
	processor := lifecycle.New(gameStore, metricsSvc, pubsubClient)

	s := server.NewServer(
		queueMgr,
		playerStore,
		fieldIndex,
		gameStore,
		ledger,
		processor,
		metricsSvc,
		metricsHandler,
		cfg,
		pubsubClient,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
