package middleware

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
)

const (
	MIMEText        = "text/plain"
	MIMETextUTF8    = "text/plain; charset=utf-8"
	HeaderRequestID = "X-Request-ID"
)

var ErrMissingParameter = errors.New("missing required query parameter")

// StatusFor maps an error kind to the HTTP status returned to the caller.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes a plain-text error body. Server errors never carry the
// underlying error text.
func HandleError(resp *restful.Response, err error, status int) {
	message := http.StatusText(status)
	if status < http.StatusInternalServerError && err != nil {
		message = err.Error()
	}

	resp.Header().Set(restful.HEADER_ContentType, MIMETextUTF8)
	resp.WriteHeader(status)
	_, _ = resp.Write([]byte(message))
}
