package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
	"github.com/labfetch/labfetch-api/pkg/metrics"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("LABFETCH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LABFETCH_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewDB(ctx, Config{URL: url})
	require.NoError(t, err)
	require.NoError(t, Migrate(db.DB))

	_, err = db.Exec(`TRUNCATE pickups, settings, admins RESTART IDENTITY`)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func newPickup() *model.Pickup {
	date := model.NewDate(2099, time.January, 1)
	shift := model.ShiftMorning
	return &model.Pickup{
		PetName:         "Luna",
		Contact:         "Sangre",
		Department:      "BOGOTA",
		City:            "BOGOTA D.C.",
		ViaType:         "Calle",
		ViaNumber:       "80",
		GeneratorNumber: "15",
		PlaqueNumber:    "20",
		Complement:      strPtr("Apto 301"),
		FullAddress:     "Calle 80 # 15 - 20 (Apto 301) BOGOTA D.C., BOGOTA",
		PreferredDate:   &date,
		PreferredShift:  &shift,
	}
}

func TestPickupRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPickupRepository(NewBaseRepository(db, metrics.NewNop()))

	p := newPickup()
	require.NoError(t, repo.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.Equal(t, model.PickupStatusPending, p.Status)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.FullAddress, got.FullAddress)
	require.NotNil(t, got.PreferredDate)
	assert.Equal(t, "2099-01-01", got.PreferredDate.String())
	assert.Equal(t, model.ShiftMorning, *got.PreferredShift)
	assert.Nil(t, got.PhotoURL)

	_, err = repo.Get(ctx, p.ID+1000)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	time.Sleep(10 * time.Millisecond)
	updated, err := repo.Update(ctx, p.ID, &model.PickupUpdate{
		Status: model.Some(model.PickupStatusCompleted),
		Notes:  model.Some("entregado"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PickupStatusCompleted, updated.Status)
	assert.Equal(t, "entregado", *updated.Notes)
	assert.True(t, updated.UpdatedAt.After(got.UpdatedAt))

	cleared, err := repo.Update(ctx, p.ID, &model.PickupUpdate{Notes: model.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Notes)
	assert.Equal(t, model.PickupStatusCompleted, cleared.Status)

	_, err = repo.Update(ctx, p.ID+1000, &model.PickupUpdate{Notes: model.Some("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	withPhoto, err := repo.SetPhoto(ctx, p.ID, "/uploads/pickups/1/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/pickups/1/a.jpg", *withPhoto.PhotoURL)

	urls, err := repo.PhotoURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/pickups/1/a.jpg"}, urls)

	second := newPickup()
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.List(ctx, model.PickupFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	pending, err := repo.List(ctx, model.PickupFilter{Status: model.PickupStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestSettingRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewSettingRepository(NewBaseRepository(db, nil))

	_, err := repo.Get(ctx, model.PublicScheduleMessageKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.UpsertMany(ctx, map[string]string{
		model.PublicScheduleMessageKey: "Lunes a viernes",
		"contact_phone":                "3001234567",
	}))
	require.NoError(t, repo.UpsertMany(ctx, map[string]string{
		model.PublicScheduleMessageKey: "Lunes a sábado",
	}))

	s, err := repo.Get(ctx, model.PublicScheduleMessageKey)
	require.NoError(t, err)
	assert.Equal(t, "Lunes a sábado", s.Value)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdminRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAdminRepository(NewBaseRepository(db, nil))

	_, err := repo.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	created, err := repo.Upsert(ctx, "admin", "hash-1")
	require.NoError(t, err)
	again, err := repo.Upsert(ctx, "admin", "hash-2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", got.PasswordHash)
}
