package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labfetch/labfetch-api/internal/handler"
	"github.com/labfetch/labfetch-api/internal/middleware"
	"github.com/labfetch/labfetch-api/internal/model"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

const msgCredentialsRequired = "Se requieren usuario y contraseña."

type AuthServicer interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type Handler struct {
	service AuthServicer
}

func NewHandler(service AuthServicer) *Handler {
	return &Handler{service: service}
}

type Routes struct {
	Public []gin.HandlerFunc
	Admin  []gin.HandlerFunc
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, m Routes) {
	admin := r.Group("/admin")
	admin.POST("/login", append(append([]gin.HandlerFunc{}, m.Public...), h.Login)...)
	admin.GET("/me", append(append([]gin.HandlerFunc{}, m.Admin...), h.Me)...)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest(msgCredentialsRequired, err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso.",
		"token":   resp.Token,
		"admin":   resp.Admin,
	})
}

// Me returns the admin the bearer token belongs to.
func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		handler.RespondError(c, apperrors.Unauthorized("Acceso no autorizado.", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": p})
}
