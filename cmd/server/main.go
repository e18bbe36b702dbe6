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

	"github.com/rs/cors"

	"github.com/musicticker/acestep-server/config"
	"github.com/musicticker/acestep-server/internal/api"
	"github.com/musicticker/acestep-server/internal/backend"
	"github.com/musicticker/acestep-server/internal/generate"
	"github.com/musicticker/acestep-server/internal/logger"
)

func main() {
	log := logger.New()

	// Load config from files and environment variables
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("failed to load config")
		os.Exit(1)
	}

	// Build the generation backend once, up front. If it cannot be
	// constructed the process runs on the silence backend for its lifetime.
	ctx := context.Background()
	b, err := backend.New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("generation backend unavailable, serving silence")
		b = backend.NewSilenceBackend()
	} else {
		log.Info(fmt.Sprintf("generation backend ready: %s", b.Name()))
	}

	service := generate.NewService(b,
		cfg.Audio.SampleRate,
		cfg.Audio.Channels,
		time.Duration(cfg.Backend.Timeout)*time.Second,
	)

	r := api.NewRouter(service, cfg.Defaults)

	// CORS setup for browser clients
	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:       []string{"Content-Type"},
		OptionsSuccessStatus: http.StatusOK,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: c.Handler(r),
	}

	go func() {
		log.Info(fmt.Sprintf("ACE-Step server starting on http://localhost:%d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown did not complete cleanly")
	}
}
