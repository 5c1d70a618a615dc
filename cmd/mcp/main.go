package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/config"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/setup/logger"
)

func main() {
	// Load env
	_ = godotenv.Load()

	// Load Config
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New(os.Stderr, "info", true)
		bootLogger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// stdout carries the protocol, logs go to stderr
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat != "json")

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	server := mcpadapter.NewServer(deps.Service, &log)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes (e.g. echo | ./bin/chat-mcp)
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			log.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		log.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}
