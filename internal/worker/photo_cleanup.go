package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/labfetch/labfetch-api/internal/repository"
	"github.com/labfetch/labfetch-api/internal/storage"
	"github.com/labfetch/labfetch-api/pkg/metrics"
)

// PhotoPrefix is the key prefix under which pickup photos are stored.
const PhotoPrefix = "pickups/"

// PhotoCleanupWorker removes stored photos no pickup references anymore.
// Blobs younger than the grace period are kept so an upload racing the
// sweep is never lost.
type PhotoCleanupWorker struct {
	repo     repository.PickupRepository
	store    storage.BlobStore
	schedule string
	grace    time.Duration
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewPhotoCleanupWorker(repo repository.PickupRepository, store storage.BlobStore, schedule string, grace time.Duration, logger zerolog.Logger, m *metrics.Metrics) *PhotoCleanupWorker {
	if m == nil {
		m = metrics.NewNop()
	}
	return &PhotoCleanupWorker{
		repo:     repo,
		store:    store,
		schedule: schedule,
		grace:    grace,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Start registers the sweep on a cron scheduler and stops it when ctx ends.
func (w *PhotoCleanupWorker) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(w.schedule, func() {
		if _, err := w.Cleanup(ctx); err != nil {
			w.logger.Error().Err(err).Msg("photo cleanup failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", w.schedule, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}

// Cleanup runs one sweep and returns how many blobs were removed.
func (w *PhotoCleanupWorker) Cleanup(ctx context.Context) (int, error) {
	removed, err := w.cleanup(ctx)
	status := "success"
	if err != nil {
		status = "error"
	}
	w.metrics.CleanupRuns.WithLabelValues(status).Inc()
	return removed, err
}

func (w *PhotoCleanupWorker) cleanup(ctx context.Context) (int, error) {
	urls, err := w.repo.PhotoURLs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load photo references: %w", err)
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key, ok := w.store.KeyFromURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	blobs, err := w.store.List(PhotoPrefix)
	if err != nil {
		return 0, err
	}

	cutoff := w.now().Add(-w.grace)
	removed := 0
	for _, b := range blobs {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if _, ok := referenced[b.Key]; ok || b.ModTime.After(cutoff) {
			continue
		}
		if err := w.store.Delete(b.Key); err != nil {
			w.logger.Warn().Err(err).Str("key", b.Key).Msg("failed to delete orphan photo")
			continue
		}
		removed++
	}

	w.metrics.BlobsCleaned.Add(float64(removed))
	w.logger.Info().Int("removed", removed).Int("scanned", len(blobs)).Msg("photo cleanup finished")
	return removed, nil
}
