package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger logs one line per request. Bodies are never logged: the public
// form carries contact data and the login form carries passwords.
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		statusCode := c.Writer.Status()
		event := base.Info()
		msg := "Request processed"
		switch {
		case statusCode >= 500:
			event, msg = base.Error(), "Server error"
		case statusCode >= 400:
			event, msg = base.Warn(), "Client error"
		}

		if p, ok := Principal(c); ok {
			event = event.Int64("admin_id", p.AdminID)
		}
		event.
			Str("request_id", c.GetString(ContextRequestID)).
			Str("client_ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("latency", time.Since(start)).
			Str("user_agent", c.Request.UserAgent()).
			Msg(msg)
	}
}
