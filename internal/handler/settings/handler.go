package settings

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labfetch/labfetch-api/internal/handler"
	"github.com/labfetch/labfetch-api/internal/model"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

const (
	msgUpdated     = "Configuración actualizada exitosamente."
	msgInvalidBody = "Cuerpo de solicitud inválido: Se esperaba un objeto de configuración."
)

type SettingsServicer interface {
	GetPublicSetting(ctx context.Context, key string) (string, error)
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	GetAllSettings(ctx context.Context) (map[string]string, error)
	PutSettings(ctx context.Context, values map[string]interface{}) error
	PutSetting(ctx context.Context, key, value string) (*model.Setting, error)
}

type Handler struct {
	service SettingsServicer
}

func NewHandler(service SettingsServicer) *Handler {
	return &Handler{service: service}
}

type Routes struct {
	Public []gin.HandlerFunc
	Admin  []gin.HandlerFunc
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, m Routes) {
	settings := r.Group("/settings")

	public := settings.Group("/public", m.Public...)
	public.GET("/pickup-schedule-message", h.GetScheduleMessage)

	admin := settings.Group("", m.Admin...)
	{
		admin.GET("", h.GetAllSettings)
		admin.PUT("", h.PutSettings)
		admin.GET("/:key", h.GetSetting)
		admin.PUT("/:key", h.PutSetting)
	}
}

func (h *Handler) GetScheduleMessage(c *gin.Context) {
	value, err := h.service.GetPublicSetting(c.Request.Context(), model.PublicScheduleMessageKey)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value})
}

func (h *Handler) GetAllSettings(c *gin.Context) {
	all, err := h.service.GetAllSettings(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

func (h *Handler) PutSettings(c *gin.Context) {
	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil || values == nil {
		handler.RespondError(c, apperrors.BadRequest(msgInvalidBody, err))
		return
	}
	if err := h.service.PutSettings(c.Request.Context(), values); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUpdated})
}

func (h *Handler) GetSetting(c *gin.Context) {
	setting, err := h.service.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

type putSettingRequest struct {
	Value *string `json:"value" binding:"required"`
}

func (h *Handler) PutSetting(c *gin.Context) {
	var req putSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.BadRequest(msgInvalidBody, err))
		return
	}
	setting, err := h.service.PutSetting(c.Request.Context(), c.Param("key"), *req.Value)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
