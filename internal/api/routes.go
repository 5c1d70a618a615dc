package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/api/middleware"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/ai").
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/chat").
			To(handler.Chat).
			Filter(middleware.RequireQueryParameter("prompt")).
			Produces(middleware.MIMEText).
			Doc("Forward a prompt to the model and return the completion as plain text").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chat"}).
			Param(ws.QueryParameter("prompt", "Prompt text").DataType("string").Required(true)).
			Returns(200, "OK", nil).
			Returns(400, "Bad Request", nil).
			Returns(500, "Internal Server Error", nil))

	container.Add(ws)
}
