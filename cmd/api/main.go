package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/api"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/config"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/setup/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	// Load Config
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New(os.Stderr, "info", true)
		bootLogger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Setup logging
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat != "json")
	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	// API
	handler := api.NewHandler(deps.Service, deps.Provider, deps.ModelID, &log)
	container := api.NewContainer(handler, &log)
	server := api.NewServer(cfg, container)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", server.Addr).Msg("Starting Chat Agent API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down Chat Agent API")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
