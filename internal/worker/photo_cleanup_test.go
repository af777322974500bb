package worker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/storage"
	"github.com/labfetch/labfetch-api/internal/testutil"
	"github.com/labfetch/labfetch-api/pkg/metrics"
)

func TestCleanupRemovesOnlyOldOrphans(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := storage.NewStore(fs, "/uploads")
	repo := testutil.NewPickupRepo()

	p := &model.Pickup{PetName: "Luna"}
	require.NoError(t, repo.Create(ctx, p))

	keptURL, err := store.Put("pickups/1/kept.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = repo.SetPhoto(ctx, p.ID, keptURL)
	require.NoError(t, err)

	_, err = store.Put("pickups/1/orphan.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	_, err = store.Put("pickups/1/fresh.jpg", strings.NewReader("c"))
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-2 * time.Hour)
	require.NoError(t, fs.Chtimes("/pickups/1/kept.jpg", old, old))
	require.NoError(t, fs.Chtimes("/pickups/1/orphan.jpg", old, old))
	require.NoError(t, fs.Chtimes("/pickups/1/fresh.jpg", now, now))

	w := NewPhotoCleanupWorker(repo, store, "@daily", time.Hour, zerolog.Nop(), metrics.NewNop())
	w.now = func() time.Time { return now }

	removed, err := w.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	blobs, err := store.List(PhotoPrefix)
	require.NoError(t, err)
	keys := make([]string, 0, len(blobs))
	for _, b := range blobs {
		keys = append(keys, b.Key)
	}
	assert.Equal(t, []string{"pickups/1/fresh.jpg", "pickups/1/kept.jpg"}, keys)
}

func TestCleanupFailsWhenReferencesUnavailable(t *testing.T) {
	repo := testutil.NewPickupRepo()
	repo.Err = assert.AnError
	w := NewPhotoCleanupWorker(repo, storage.NewStore(afero.NewMemMapFs(), "/uploads"), "@daily", time.Hour, zerolog.Nop(), nil)

	_, err := w.Cleanup(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	w := NewPhotoCleanupWorker(testutil.NewPickupRepo(), storage.NewStore(afero.NewMemMapFs(), "/uploads"), "not a schedule", time.Hour, zerolog.Nop(), nil)
	_, err := w.Start(context.Background())
	assert.Error(t, err)
}
