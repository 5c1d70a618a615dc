package api

import (
	"context"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/api/middleware"
	"github.com/rs/zerolog"
)

// ChatService answers a single prompt.
type ChatService interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type Handler struct {
	service  ChatService
	provider string
	modelID  string
	logger   *zerolog.Logger
}

func NewHandler(service ChatService, provider string, modelID string, logger *zerolog.Logger) *Handler {
	return &Handler{
		service:  service,
		provider: provider,
		modelID:  modelID,
		logger:   logger,
	}
}

// Chat handles GET /api/ai/chat?prompt=<text>
// The prompt presence check runs as a route filter, so prompt is never empty here.
func (h *Handler) Chat(req *restful.Request, resp *restful.Response) {
	prompt := req.QueryParameter("prompt")
	requestID := middleware.RequestID(req)

	h.logger.Info().
		Str("request_id", requestID).
		Int("prompt_length", len(prompt)).
		Msg("Process chat")

	completion, err := h.service.Ask(req.Request.Context(), prompt)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", requestID).Msg("Failed to complete prompt")
		middleware.HandleError(resp, err, middleware.StatusFor(err))
		return
	}

	resp.Header().Set(restful.HEADER_ContentType, middleware.MIMETextUTF8)
	resp.WriteHeader(http.StatusOK)
	if _, err := resp.Write([]byte(completion)); err != nil {
		h.logger.Warn().Err(err).Str("request_id", requestID).Msg("Failed to write completion")
	}
}

// Health handler GET /api/ai/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Provider: h.provider,
		Model:    h.modelID,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
