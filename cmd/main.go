package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/config"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/setup/logger"
)

func main() {
	prompt := flag.String("prompt", "", "The prompt to send to the model")
	stdin := flag.Bool("stdin", false, "Read prompt from stdin")

	flag.Parse()

	log := logger.New(os.Stderr, "info", true)

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	var finalPrompt string

	if *stdin {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read from stdin")
		}
		finalPrompt = string(bytes)
	} else if *prompt != "" {
		finalPrompt = *prompt
	}

	if finalPrompt == "" {
		log.Fatal().Msg("Please provide a prompt using -prompt or -stdin")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log = logger.New(os.Stderr, cfg.LogLevel, true)

	ctx := context.Background()

	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	completion, err := deps.Service.Ask(ctx, finalPrompt)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to complete prompt")
	}

	fmt.Println(completion)
}
