package pickup

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/handler"
	"github.com/labfetch/labfetch-api/internal/middleware"
	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/service/notification"
	pickupService "github.com/labfetch/labfetch-api/internal/service/pickup"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

const (
	msgCreated       = "Solicitud de recogida creada exitosamente."
	msgUpdated       = "Solicitud actualizada exitosamente."
	msgPhotoUploaded = "Foto subida exitosamente."
	msgInvalidID     = "ID de solicitud inválido."
	msgInvalidBody   = "Cuerpo de solicitud inválido."
	msgNoFile        = "No se recibió ningún archivo (campo 'photo')."

	photoField = "photo"
)

// Subscriber is the part of the hub the stream endpoint uses.
type Subscriber interface {
	Subscribe(ch notification.Channel) string
	Unsubscribe(id string)
}

type StreamConfig struct {
	Buffer    int
	KeepAlive time.Duration
}

type Handler struct {
	service pickupService.PickupServicer
	hub     Subscriber
	stream  StreamConfig
	logger  zerolog.Logger
}

func NewHandler(service pickupService.PickupServicer, hub Subscriber, stream StreamConfig, logger zerolog.Logger) *Handler {
	if stream.KeepAlive <= 0 {
		stream.KeepAlive = 25 * time.Second
	}
	return &Handler{service: service, hub: hub, stream: stream, logger: logger}
}

// Routes holds the middleware chains each access level is mounted with.
type Routes struct {
	Public []gin.HandlerFunc
	Stream []gin.HandlerFunc
	Admin  []gin.HandlerFunc
	Update []gin.HandlerFunc
	Upload []gin.HandlerFunc
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, m Routes) {
	pickups := r.Group("/pickups")
	pickups.POST("", chain(m.Public, h.CreatePickup)...)
	pickups.GET("/stream", chain(m.Stream, h.Stream)...)

	admin := pickups.Group("", m.Admin...)
	{
		admin.GET("", h.ListPickups)
		admin.GET("/:id", h.GetPickup)
		admin.PUT("/:id", chain(m.Update, h.UpdatePickup)...)
		admin.POST("/:id/photo", chain(m.Upload, h.UploadPhoto)...)
	}
}

func chain(pre []gin.HandlerFunc, last gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(pre)+1)
	out = append(out, pre...)
	return append(out, last)
}

func (h *Handler) CreatePickup(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		handler.RespondError(c, apperrors.Validation(msgInvalidBody, map[string]string{"payload": msgInvalidBody}))
		return
	}

	p, err := h.service.CreatePickup(c.Request.Context(), payload)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.MessageResponse{Message: msgCreated, Pickup: p})
}

func (h *Handler) ListPickups(c *gin.Context) {
	filter := model.PickupFilter{Status: model.PickupStatus(c.Query("status"))}
	list, err := h.service.ListPickups(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetPickup(c *gin.Context) {
	id, ok := pickupID(c)
	if !ok {
		return
	}
	p, err := h.service.GetPickup(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdatePickup(c *gin.Context) {
	id, ok := pickupID(c)
	if !ok {
		return
	}

	var upd model.PickupUpdate
	if err := json.NewDecoder(c.Request.Body).Decode(&upd); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handler.RespondError(c, apperrors.PayloadTooLarge(middleware.MsgPayloadTooLarge, err))
			return
		}
		handler.RespondError(c, apperrors.BadRequest(msgInvalidBody, err))
		return
	}

	p, err := h.service.UpdatePickup(c.Request.Context(), id, &upd)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.MessageResponse{Message: msgUpdated, Pickup: p})
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	id, ok := pickupID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile(photoField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handler.RespondError(c, apperrors.PayloadTooLarge(middleware.MsgPayloadTooLarge, err))
			return
		}
		handler.RespondError(c, apperrors.BadRequest(msgNoFile, err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		handler.RespondError(c, apperrors.Internal(err))
		return
	}
	defer f.Close()

	p, err := h.service.AttachPhoto(c.Request.Context(), id, pickupService.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   msgPhotoUploaded,
		"photo_url": p.PhotoURL,
		"pickup":    p,
	})
}

// Stream holds an SSE connection open and relays hub events until the
// client goes away or falls too far behind.
func (h *Handler) Stream(c *gin.Context) {
	ch := notification.NewStreamChannel(h.stream.Buffer)
	id := h.hub.Subscribe(ch)
	defer func() {
		h.hub.Unsubscribe(id)
		ch.Close()
	}()

	log := h.logger.With().Str("channel_id", id).Logger()
	log.Info().Msg("stream opened")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ping := time.NewTicker(h.stream.KeepAlive)
	defer ping.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event := <-ch.Events():
			c.SSEvent(event.Type, event.Data)
			return true
		case <-ch.Done():
			log.Warn().Msg("stream channel closed, client too slow or server shutting down")
			return false
		case t := <-ping.C:
			c.SSEvent(model.EventPing, gin.H{"time": t.UTC().Format(time.RFC3339)})
			return true
		}
	})

	log.Info().Msg("stream closed")
}

func pickupID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		handler.RespondError(c, apperrors.BadRequest(msgInvalidID, err))
		return 0, false
	}
	return id, true
}
