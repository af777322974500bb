package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/labfetch/labfetch-api/internal/handler"
)

// ExposeErrors marks whether 5xx detail may reach clients for this request.
func ExposeErrors(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handler.ExposeInternalErrorsKey, expose)
		c.Next()
	}
}

// ErrorHandler renders errors attached with c.Error by handlers that did
// not write a response themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		handler.RespondError(c, c.Errors.Last().Err)
	}
}
