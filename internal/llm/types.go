package llm

import "errors"

// LLMRequest carries a single user turn. No system prompt, history or sampling parameters.
type LLMRequest struct {
	Prompt string
}

type LLMResponse struct {
	Content    string
	StopReason string
}

// ErrEmptyCompletion is returned when the provider answered without any text.
var ErrEmptyCompletion = errors.New("model returned no completion")
