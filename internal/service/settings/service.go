package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

const (
	msgSettingNotFound = "Configuración no encontrada."
	msgInvalidSettings = "Se esperaba un objeto con valores de texto."
	msgEmptyKey        = "La clave de configuración no puede estar vacía."
)

type Service struct {
	repo  repository.SettingRepository
	cache *cache.Cache
	// version counts writes of the public key; a read only fills the cache
	// when no write landed while it was in flight.
	mu      sync.Mutex
	version uint64
	logger  zerolog.Logger
}

// NewService caches the public setting for ttl; ttl <= 0 disables caching.
func NewService(repo repository.SettingRepository, ttl time.Duration, logger zerolog.Logger) *Service {
	s := &Service{repo: repo, logger: logger}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

// GetPublicSetting only ever exposes the schedule message.
func (s *Service) GetPublicSetting(ctx context.Context, key string) (string, error) {
	if key != model.PublicScheduleMessageKey {
		return "", apperrors.NotFound(msgSettingNotFound, nil)
	}
	if s.cache == nil {
		setting, err := s.GetSetting(ctx, key)
		if err != nil {
			return "", err
		}
		return setting.Value, nil
	}
	if v, ok := s.cache.Get(key); ok {
		return v.(string), nil
	}

	s.mu.Lock()
	seen := s.version
	s.mu.Unlock()

	setting, err := s.GetSetting(ctx, key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.version == seen {
		s.cache.SetDefault(key, setting.Value)
	}
	s.mu.Unlock()
	return setting.Value, nil
}

func (s *Service) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(msgSettingNotFound, err)
		}
		return nil, apperrors.Persistence(err)
	}
	return setting, nil
}

func (s *Service) GetAllSettings(ctx context.Context) (map[string]string, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Persistence(fmt.Errorf("list settings: %w", err))
	}
	out := make(map[string]string, len(list))
	for _, setting := range list {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

// PutSettings upserts every pair atomically. Non-string values are
// rejected as a whole before anything is written.
func (s *Service) PutSettings(ctx context.Context, raw map[string]interface{}) error {
	values := make(map[string]string, len(raw))
	fields := map[string]string{}
	for k, v := range raw {
		str, ok := v.(string)
		switch {
		case strings.TrimSpace(k) == "":
			fields[k] = msgEmptyKey
		case !ok:
			fields[k] = "Debe ser texto."
		default:
			values[k] = str
		}
	}
	if len(fields) > 0 {
		return apperrors.Validation(msgInvalidSettings, fields)
	}
	if len(values) == 0 {
		return nil
	}
	return s.upsert(ctx, values)
}

func (s *Service) PutSetting(ctx context.Context, key, value string) (*model.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apperrors.BadRequest(msgEmptyKey, nil)
	}
	if err := s.upsert(ctx, map[string]string{key: value}); err != nil {
		return nil, err
	}
	return s.GetSetting(ctx, key)
}

func (s *Service) upsert(ctx context.Context, values map[string]string) error {
	if err := s.repo.UpsertMany(ctx, values); err != nil {
		return apperrors.Persistence(fmt.Errorf("upsert settings: %w", err))
	}
	if v, ok := values[model.PublicScheduleMessageKey]; ok && s.cache != nil {
		s.mu.Lock()
		s.version++
		s.cache.SetDefault(model.PublicScheduleMessageKey, v)
		s.mu.Unlock()
	}
	s.logger.Info().Int("keys", len(values)).Msg("settings updated")
	return nil
}
