package mcpadapter

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyPrompt      = errors.New("prompt is required")
	ErrCompletionFailed = errors.New("completion failed")
)

// Asker answers a single prompt.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// AskInput is the MCP tool input schema (matches the HTTP query parameter name).
type AskInput struct {
	Prompt string `json:"prompt" jsonschema:"prompt text forwarded to the model unmodified"`
}

type AskOutput struct {
	Completion string `json:"completion" jsonschema:"model completion text"`
}

// NewAskHandler returns a tool handler backed by the given service.
// Pass the returned function to mcp.AddTool.
func NewAskHandler(service Asker, logger *zerolog.Logger) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
		return Ask(ctx, service, logger, input)
	}
}

// Ask runs one completion. Downstream errors are logged and replaced with a
// generic tool error.
func Ask(ctx context.Context, service Asker, logger *zerolog.Logger, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
	if input.Prompt == "" {
		return nil, AskOutput{}, ErrEmptyPrompt
	}

	completion, err := service.Ask(ctx, input.Prompt)
	if err != nil {
		logger.Error().Err(err).Int("prompt_length", len(input.Prompt)).Msg("ask tool failed")
		return nil, AskOutput{}, ErrCompletionFailed
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: completion}},
	}, AskOutput{Completion: completion}, nil
}

// NewServer builds an MCP server exposing the ask tool.
func NewServer(service Asker, logger *zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "chat-agent",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask",
		Description: "Send a single prompt to the configured model and return the plain-text completion",
	}, NewAskHandler(service, logger))

	return server
}
