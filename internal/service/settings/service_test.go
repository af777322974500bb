package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/testutil"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
)

func code(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestPublicSettingNeverSet(t *testing.T) {
	svc := NewService(testutil.NewSettingRepo(), time.Minute, zerolog.Nop())
	_, err := svc.GetPublicSetting(context.Background(), model.PublicScheduleMessageKey)
	assert.Equal(t, apperrors.ErrNotFound, code(t, err))
}

func TestPublicSettingOnlyExposesScheduleMessage(t *testing.T) {
	repo := testutil.NewSettingRepo()
	require.NoError(t, repo.UpsertMany(context.Background(), map[string]string{"smtp_password": "x"}))
	svc := NewService(repo, time.Minute, zerolog.Nop())

	_, err := svc.GetPublicSetting(context.Background(), "smtp_password")
	assert.Equal(t, apperrors.ErrNotFound, code(t, err))
	assert.Zero(t, repo.Gets)
}

func TestPublicSettingIsCachedAndRefreshedOnPut(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewSettingRepo()
	svc := NewService(repo, time.Minute, zerolog.Nop())

	require.NoError(t, svc.PutSettings(ctx, map[string]interface{}{model.PublicScheduleMessageKey: "Lunes a viernes"}))
	for i := 0; i < 3; i++ {
		v, err := svc.GetPublicSetting(ctx, model.PublicScheduleMessageKey)
		require.NoError(t, err)
		assert.Equal(t, "Lunes a viernes", v)
	}
	assert.Zero(t, repo.Gets)

	_, err := svc.PutSetting(ctx, model.PublicScheduleMessageKey, "Sábados")
	require.NoError(t, err)
	v, err := svc.GetPublicSetting(ctx, model.PublicScheduleMessageKey)
	require.NoError(t, err)
	assert.Equal(t, "Sábados", v)
}

func TestPutWritesThroughCache(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewSettingRepo()
	svc := NewService(repo, time.Minute, zerolog.Nop())

	require.NoError(t, svc.PutSettings(ctx, map[string]interface{}{model.PublicScheduleMessageKey: "Lunes a viernes"}))
	v, err := svc.GetPublicSetting(ctx, model.PublicScheduleMessageKey)
	require.NoError(t, err)
	assert.Equal(t, "Lunes a viernes", v)
	assert.Zero(t, repo.Gets)
}

func TestReadOverlappingPutDoesNotCacheStaleValue(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewSettingRepo()
	require.NoError(t, repo.UpsertMany(ctx, map[string]string{model.PublicScheduleMessageKey: "viejo"}))
	svc := NewService(repo, time.Minute, zerolog.Nop())

	var once sync.Once
	repo.AfterGet = func() {
		once.Do(func() {
			require.NoError(t, svc.PutSettings(ctx, map[string]interface{}{model.PublicScheduleMessageKey: "nuevo"}))
		})
	}

	v, err := svc.GetPublicSetting(ctx, model.PublicScheduleMessageKey)
	require.NoError(t, err)
	assert.Equal(t, "viejo", v, "the in-flight read returns what it read")

	v, err = svc.GetPublicSetting(ctx, model.PublicScheduleMessageKey)
	require.NoError(t, err)
	assert.Equal(t, "nuevo", v)
	assert.Equal(t, 1, repo.Gets)
}

func TestPutSettingsRejectsNonStrings(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewSettingRepo()
	svc := NewService(repo, 0, zerolog.Nop())

	err := svc.PutSettings(ctx, map[string]interface{}{"a": "ok", "b": 3.0})
	assert.Equal(t, apperrors.ErrValidation, code(t, err))

	all, err := svc.GetAllSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "nothing written")
}

func TestGetAllSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewSettingRepo(), 0, zerolog.Nop())
	require.NoError(t, svc.PutSettings(ctx, map[string]interface{}{"a": "1", "b": "2"}))

	all, err := svc.GetAllSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, all)
}

func TestStoreFailure(t *testing.T) {
	repo := testutil.NewSettingRepo()
	repo.Err = errors.New("db down")
	svc := NewService(repo, 0, zerolog.Nop())

	err := svc.PutSettings(context.Background(), map[string]interface{}{"a": "1"})
	assert.Equal(t, apperrors.ErrPersistence, code(t, err))
	_, err = svc.GetAllSettings(context.Background())
	assert.Equal(t, apperrors.ErrPersistence, code(t, err))
}
