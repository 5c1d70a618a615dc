package chat

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm"
	"github.com/rs/zerolog"
)

// Service forwards a single prompt to the configured model and returns its text.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	llmClient llm.LLMClient
	logger    *zerolog.Logger
}

func NewService(llmClient llm.LLMClient, logger *zerolog.Logger) *Service {
	return &Service{
		llmClient: llmClient,
		logger:    logger,
	}
}

func (s *Service) Ask(ctx context.Context, prompt string) (string, error) {
	response, err := s.llmClient.InvokeModel(ctx, llm.LLMRequest{
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("completion_length", len(response.Content)).
		Str("stop_reason", response.StopReason).
		Msg("completion received")

	return response.Content, nil
}
