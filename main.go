package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkotenko/timekit-be/internal/api"
	"github.com/dkotenko/timekit-be/internal/config"
	"github.com/dkotenko/timekit-be/internal/database"
	"github.com/dkotenko/timekit-be/internal/logger"
	"github.com/dkotenko/timekit-be/internal/monitoring"
	"github.com/dkotenko/timekit-be/internal/services"
	"github.com/dkotenko/timekit-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db)
	timerService := services.NewTimerService(db)

	// Set up and run the background stat reporter
	statReporter := monitoring.NewStatReporter(hub)
	go statReporter.Run()

	// Optional session TTL sweep; disabled by default so sessions live until
	// explicit logout.
	var sweeper *monitoring.SessionSweeper
	if cfg.SessionTTLHours > 0 {
		ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
		sweeper, err = monitoring.NewSessionSweeper(sessionService, ttl, cfg.SessionSweepCron)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to set up session sweeper")
		}
		go sweeper.Run()
	}

	// Set up router
	router := api.NewRouter(hub, userService, sessionService, timerService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statReporter.Stop()
	if sweeper != nil {
		sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
