package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const attributeRequestID = "request_id"

// Logger tags every request with an id and logs it once the chain has run.
// The raw query is not logged since it carries the prompt.
func Logger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		start := time.Now()

		requestID := req.HeaderParameter(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		req.SetAttribute(attributeRequestID, requestID)
		resp.Header().Set(HeaderRequestID, requestID)

		chain.ProcessFilter(req, resp)

		logger.Info().
			Str("request_id", requestID).
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	}
}

func RecoverPanic(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("request_id", RequestID(req)).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("Recovered from panic")
				HandleError(resp, fmt.Errorf("panic: %v", r), http.StatusInternalServerError)
			}
		}()

		chain.ProcessFilter(req, resp)
	}
}

// RequireQueryParameter rejects the request with 400 before the route runs
// when the parameter is absent or empty.
func RequireQueryParameter(name string) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		if req.QueryParameter(name) == "" {
			HandleError(resp, fmt.Errorf("%w: %s", ErrMissingParameter, name), http.StatusBadRequest)
			return
		}

		chain.ProcessFilter(req, resp)
	}
}

func RequestID(req *restful.Request) string {
	if id, ok := req.Attribute(attributeRequestID).(string); ok {
		return id
	}
	return ""
}
