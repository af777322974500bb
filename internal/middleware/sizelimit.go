package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labfetch/labfetch-api/internal/handler"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

// MsgPayloadTooLarge is returned for bodies over the route limit.
const MsgPayloadTooLarge = "El archivo excede el tamaño máximo permitido."

// SizeLimit caps the request body at max bytes. Declared lengths over the
// limit are refused immediately; chunked bodies fail when read past it,
// which handlers report as PayloadTooLarge.
func SizeLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			handler.RespondError(c, apperrors.PayloadTooLarge(MsgPayloadTooLarge,
				fmt.Errorf("content length %d exceeds %d", c.Request.ContentLength, max)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
