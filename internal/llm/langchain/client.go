// Package langchain adapts langchaingo models (Gemini, Ollama) to llm.LLMClient.
package langchain

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
)

type Client struct {
	Model   llms.Model
	ModelID string
}

func NewClient(model llms.Model, modelID string) *Client {
	return &Client{
		Model:   model,
		ModelID: modelID,
	}
}

func NewGeminiClient(ctx context.Context, apiKey string, modelID string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelID),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	return NewClient(model, modelID), nil
}

func NewOllamaClient(serverURL string, modelID string) (*Client, error) {
	if modelID == "" {
		return nil, fmt.Errorf("Ollama model ID is required")
	}

	model, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelID),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create ollama client: %w", err)
	}

	return NewClient(model, modelID), nil
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, request.Prompt),
	}

	output, err := c.Model.GenerateContent(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke %s model: %w", c.ModelID, err)
	}

	if output == nil || len(output.Choices) == 0 {
		return nil, llm.ErrEmptyCompletion
	}

	choice := output.Choices[0]
	return &llm.LLMResponse{
		Content:    choice.Content,
		StopReason: choice.StopReason,
	}, nil
}
