package pickup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/address"
	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
	"github.com/labfetch/labfetch-api/internal/service/notification"
	"github.com/labfetch/labfetch-api/internal/storage"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
	"github.com/labfetch/labfetch-api/pkg/metrics"
)

const (
	msgInvalidData     = "Datos inválidos o incompletos."
	msgNotFound        = "Solicitud de recogida no encontrada."
	msgNotFoundUpdate  = "Solicitud de recogida no encontrada para actualizar."
	msgEmptyUpdate     = "Se requiere al menos un campo para actualizar (status, driver_id o notes)."
	msgInvalidStatus   = "Estado inválido."
	msgNotImage        = "Solo se permiten archivos de imagen."
	msgInvalidDriverID = "driver_id debe ser un entero positivo o null."
)

// PickupServicer is what the HTTP layer needs from the pickup workflow.
type PickupServicer interface {
	CreatePickup(ctx context.Context, payload map[string]interface{}) (*model.Pickup, error)
	GetPickup(ctx context.Context, id int64) (*model.Pickup, error)
	ListPickups(ctx context.Context, filter model.PickupFilter) ([]*model.PickupSummary, error)
	UpdatePickup(ctx context.Context, id int64, upd *model.PickupUpdate) (*model.Pickup, error)
	AttachPhoto(ctx context.Context, id int64, upload Upload) (*model.Pickup, error)
}

// Upload is an image received from an admin.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type Service struct {
	repo      repository.PickupRepository
	validator *Validator
	hub       notification.Broadcaster
	blobs     storage.BlobStore
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

func NewService(repo repository.PickupRepository, validator *Validator, hub notification.Broadcaster,
	blobs storage.BlobStore, logger zerolog.Logger, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{
		repo:      repo,
		validator: validator,
		hub:       hub,
		blobs:     blobs,
		logger:    logger,
		metrics:   m,
	}
}

// CreatePickup validates a public submission, stores it and notifies
// every subscribed channel. Notification is best-effort.
func (s *Service) CreatePickup(ctx context.Context, payload map[string]interface{}) (*model.Pickup, error) {
	sub, errs := s.validator.Validate(payload)
	if len(errs) > 0 {
		s.metrics.ValidationFailures.Inc()
		return nil, apperrors.Validation(msgInvalidData, errs)
	}

	p := sub.Pickup(address.Normalize(sub.Address()))
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperrors.Persistence(fmt.Errorf("create pickup: %w", err))
	}
	s.metrics.PickupsCreated.Inc()

	delivered := s.hub.Broadcast(model.NewPickupEvent(p))
	s.logger.Info().
		Int64("pickup_id", p.ID).
		Str("ciudad", p.City).
		Int("delivered", delivered).
		Msg("pickup created")

	return p, nil
}

func (s *Service) GetPickup(ctx context.Context, id int64) (*model.Pickup, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, msgNotFound)
	}
	return p, nil
}

func (s *Service) ListPickups(ctx context.Context, filter model.PickupFilter) ([]*model.PickupSummary, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.BadRequest(msgInvalidStatus, nil)
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Persistence(fmt.Errorf("list pickups: %w", err))
	}
	return list, nil
}

// UpdatePickup applies the admin patch. Every field is checked before the
// store is touched.
func (s *Service) UpdatePickup(ctx context.Context, id int64, upd *model.PickupUpdate) (*model.Pickup, error) {
	if upd == nil || upd.Empty() {
		return nil, apperrors.EmptyUpdate(msgEmptyUpdate)
	}
	if upd.Status.Set && (upd.Status.Value == nil || !upd.Status.Value.Valid()) {
		return nil, apperrors.Validation(msgInvalidStatus, map[string]string{"status": msgInvalidStatus})
	}
	if upd.DriverID.Set && upd.DriverID.Value != nil && *upd.DriverID.Value <= 0 {
		return nil, apperrors.Validation(msgInvalidDriverID, map[string]string{"driver_id": msgInvalidDriverID})
	}

	p, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, s.lookupError(err, msgNotFoundUpdate)
	}

	s.logger.Info().Int64("pickup_id", id).Str("status", string(p.Status)).Msg("pickup updated")
	return p, nil
}

// AttachPhoto stores a new image for the pickup and swaps the reference.
// The previous blob is removed afterwards; failing to remove it is only
// logged.
func (s *Service) AttachPhoto(ctx context.Context, id int64, upload Upload) (*model.Pickup, error) {
	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return nil, apperrors.UnsupportedMediaType(msgNotImage)
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.lookupError(err, msgNotFound)
	}

	key := photoKey(id, upload.Filename, mediaType)
	url, err := s.blobs.Put(key, upload.Body)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("store photo: %w", err))
	}

	updated, err := s.repo.SetPhoto(ctx, id, url)
	if err != nil {
		s.removeBlob(key)
		return nil, s.lookupError(err, msgNotFound)
	}
	s.metrics.PhotoUploads.Inc()

	if current.PhotoURL != nil && *current.PhotoURL != url {
		if oldKey, ok := s.blobs.KeyFromURL(*current.PhotoURL); ok {
			s.removeBlob(oldKey)
		}
	}

	s.logger.Info().Int64("pickup_id", id).Str("photo_url", url).Msg("pickup photo attached")
	return updated, nil
}

func (s *Service) removeBlob(key string) {
	if err := s.blobs.Delete(key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to delete photo blob")
	}
}

func (s *Service) lookupError(err error, notFoundMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg, err)
	}
	return apperrors.Persistence(err)
}

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// photoKey names a fresh blob; the extension comes from the upload name
// or, failing that, the media type.
func photoKey(id int64, filename, mediaType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if !safeExt.MatchString(ext) {
		ext = ""
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return fmt.Sprintf("pickups/%d/%s%s", id, uuid.NewString(), ext)
}
