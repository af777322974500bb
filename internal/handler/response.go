package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

// GenericErrorMessage replaces 5xx detail when internal errors are hidden.
const GenericErrorMessage = "Ocurrió un error interno en el servidor."

// ExposeInternalErrorsKey is the gin context key set by the router when 5xx
// detail may be returned to clients.
const ExposeInternalErrorsKey = "expose_internal_errors"

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Code    string            `json:"code,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

// MessageResponse is the success body of write operations.
type MessageResponse struct {
	Message string      `json:"message"`
	Pickup  interface{} `json:"pickup,omitempty"`
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes err as a JSON error body and aborts the chain.
// Errors that are not *AppError are treated as internal.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	status := appErr.StatusCode()
	resp := NewErrorResponse(appErr.Message)
	resp.Errors = appErr.Fields
	if appErr.Code == apperrors.ErrTokenExpired {
		resp.Code = "token_expired"
	}

	if status >= http.StatusInternalServerError {
		traceID := c.GetString("trace_id")
		log.Error().
			Err(err).
			Str("trace_id", traceID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		resp.TraceID = traceID
		if c.GetBool(ExposeInternalErrorsKey) {
			resp.Message = err.Error()
		} else {
			resp.Message = GenericErrorMessage
		}
	}

	c.AbortWithStatusJSON(status, resp)
}
