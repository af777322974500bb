package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/labfetch/labfetch-api/internal/handler"
	"github.com/labfetch/labfetch-api/internal/model"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

const (
	ContextPrincipal = "principal"

	// QueryAccessToken carries the token for clients that cannot set
	// headers, such as the browser EventSource API.
	QueryAccessToken = "access_token"

	msgTokenMissing = "Acceso no autorizado: Token no proporcionado."
)

// TokenValidator turns a bearer token into the admin it was issued to.
type TokenValidator interface {
	ValidateToken(token string) (*model.Principal, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate requires a valid admin bearer token and stores the
// principal in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return m.authenticate(false)
}

// AuthenticateStream also accepts the token from the access_token query
// parameter.
func (m *AuthMiddleware) AuthenticateStream() gin.HandlerFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQuery {
			token = c.Query(QueryAccessToken)
		}
		if token == "" {
			handler.RespondError(c, apperrors.Unauthorized(msgTokenMissing, nil))
			return
		}

		principal, err := m.validator.ValidateToken(token)
		if err != nil {
			handler.RespondError(c, err)
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Principal returns the admin authenticated for this request, if any.
func Principal(c *gin.Context) (*model.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*model.Principal)
	return p, ok
}
