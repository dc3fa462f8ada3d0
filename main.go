package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/strajk-bowling-booking/api"
	bk "github.com/hanksha/strajk-bowling-booking/booking"
	"github.com/hanksha/strajk-bowling-booking/config"
	"github.com/hanksha/strajk-bowling-booking/logging"
	"go.uber.org/zap"
)

func main() {
	dotEnvErr := config.LoadDotEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogPath, Debug: cfg.Debug})
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production defaults.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger = logger.With(zap.String("component", "main"))

	if dotEnvErr != nil {
		logger.Warn("no .env file loaded", zap.Error(dotEnvErr))
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	store := bk.NewStore()
	bookingService := bk.NewService(store, bk.WithLogger(logger))
	bookingHandler := api.NewBookingHandler(bookingService)

	router := api.NewRouter(logger, cfg.AllowedOrigins, bookingHandler)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("url", "http://localhost"+cfg.Addr()))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down", zap.Int("bookings", store.Len()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
