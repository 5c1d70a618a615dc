package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/povarna/generative-ai-agents/chat-agent/internal/chat"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/chat-agent/internal/llm/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestHandler(service ChatService) http.Handler {
	logger := newTestLogger()
	handler := NewHandler(service, "bedrock", "test-model", logger)
	return WithCORS(NewContainer(handler, logger))
}

func newMockedHandler(t *testing.T) (http.Handler, *mocks.MockLLMClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockLLMClient(ctrl)
	return newTestHandler(chat.NewService(mockClient, newTestLogger())), mockClient
}

func chatPath(prompt string) string {
	return "/api/ai/chat?prompt=" + url.QueryEscape(prompt)
}

func TestChat_ReturnsCompletionVerbatim(t *testing.T) {
	handler, mockClient := newMockedHandler(t)

	mockClient.EXPECT().
		InvokeModel(gomock.Any(), llm.LLMRequest{Prompt: "Say hello"}).
		Return(&llm.LLMResponse{Content: "Hello there!", StopReason: "end_turn"}, nil).
		Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, chatPath("Say hello"), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Hello there!", rec.Body.String())
}

func TestChat_PreservesWhitespaceAndUnicode(t *testing.T) {
	handler, mockClient := newMockedHandler(t)

	prompt := "  résumé\nline two  "
	completion := "\n  première ligne\n\tdeuxième  \n"

	mockClient.EXPECT().
		InvokeModel(gomock.Any(), llm.LLMRequest{Prompt: prompt}).
		Return(&llm.LLMResponse{Content: completion}, nil).
		Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, chatPath(prompt), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, completion, rec.Body.String())
}

func TestChat_MissingPromptNeverReachesService(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "absent", path: "/api/ai/chat"},
		{name: "empty", path: "/api/ai/chat?prompt="},
		{name: "other parameter", path: "/api/ai/chat?q=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockClient := newMockedHandler(t)
			mockClient.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Times(0)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "prompt")
		})
	}
}

func TestChat_DownstreamFailureIsGeneric500(t *testing.T) {
	handler, mockClient := newMockedHandler(t)

	downstream := errors.New("ThrottlingException: rate exceeded for account 123456789012")
	mockClient.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(nil, downstream).
		Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, chatPath("hi"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ThrottlingException")
	assert.NotContains(t, rec.Body.String(), "123456789012")
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), rec.Body.String())
}

func TestChat_EmptyCompletionIs500(t *testing.T) {
	handler, mockClient := newMockedHandler(t)

	mockClient.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(nil, llm.ErrEmptyCompletion).
		Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, chatPath("hi"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), llm.ErrEmptyCompletion.Error())
}

func TestChat_ConcurrentRequestsGetOwnCompletion(t *testing.T) {
	handler, mockClient := newMockedHandler(t)
	server := httptest.NewServer(handler)
	defer server.Close()

	const requests = 25

	mockClient.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
			return &llm.LLMResponse{Content: "reply to " + req.Prompt}, nil
		}).
		Times(requests)

	var g errgroup.Group
	for i := range requests {
		g.Go(func() error {
			prompt := fmt.Sprintf("prompt-%d", i)

			resp, err := http.Get(server.URL + chatPath(prompt))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("%s: status %d", prompt, resp.StatusCode)
			}
			if got, want := string(body), "reply to "+prompt; got != want {
				return fmt.Errorf("got %q, want %q", got, want)
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func TestChat_PassesRequestContext(t *testing.T) {
	handler, mockClient := newMockedHandler(t)

	type ctxKey struct{}
	req := httptest.NewRequest(http.MethodGet, chatPath("hi"), nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "marker"))

	mockClient.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ llm.LLMRequest) (*llm.LLMResponse, error) {
			assert.Equal(t, "marker", ctx.Value(ctxKey{}))
			return &llm.LLMResponse{Content: "ok"}, nil
		}).
		Times(1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

type panicService struct{}

func (panicService) Ask(context.Context, string) (string, error) {
	panic("boom")
}

func TestChat_PanicIsGeneric500(t *testing.T) {
	handler := newTestHandler(panicService{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, chatPath("hi"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestChat_CORS(t *testing.T) {
	t.Run("simple request", func(t *testing.T) {
		handler, mockClient := newMockedHandler(t)
		mockClient.EXPECT().
			InvokeModel(gomock.Any(), gomock.Any()).
			Return(&llm.LLMResponse{Content: "ok"}, nil).
			Times(1)

		req := httptest.NewRequest(http.MethodGet, chatPath("hi"), nil)
		req.Header.Set("Origin", "https://example.org")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		handler, mockClient := newMockedHandler(t)
		mockClient.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Times(0)

		req := httptest.NewRequest(http.MethodOptions, chatPath("hi"), nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})
}

func TestChat_RequestIDHeader(t *testing.T) {
	handler, mockClient := newMockedHandler(t)
	mockClient.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(&llm.LLMResponse{Content: "ok"}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, chatPath("hi"), nil)
	req.Header.Set("X-Request-ID", "req-42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	handler, _ := newMockedHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ai/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Provider: "bedrock",
		Model:    "test-model",
	}, health)
}
