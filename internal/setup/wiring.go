package setup

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/chat-agent/internal/chat"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/config"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm/langchain"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Service  *chat.Service
	Provider string
	ModelID  string
	Logger   *zerolog.Logger
}

func Wire(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.ModelID()).
		Msg("LLM client initialized")

	return &Dependencies{
		Service:  chat.NewService(llmClient, logger),
		Provider: cfg.Provider,
		ModelID:  cfg.ModelID(),
		Logger:   logger,
	}, nil
}

func createLLMClient(ctx context.Context, cfg *config.Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID, cfg.MaxTokens)
	case config.ProviderOpenAI:
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID, cfg.OpenAIBaseURL)
	case config.ProviderGemini:
		return langchain.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	case config.ProviderOllama:
		return langchain.NewOllamaClient(cfg.OllamaServerURL, cfg.OllamaModelID)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
