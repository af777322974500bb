package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
)

type settingRepository struct {
	BaseRepository
}

func NewSettingRepository(base BaseRepository) repository.SettingRepository {
	return &settingRepository{base}
}

func (r *settingRepository) Get(ctx context.Context, key string) (s *model.Setting, err error) {
	defer func(start time.Time) { r.observe("setting_get", start, err) }(time.Now())

	var setting model.Setting
	query := `SELECT setting_key, setting_value, updated_at FROM settings WHERE setting_key = $1`
	if err = r.db.GetContext(ctx, &setting, query, key); err != nil {
		err = notFound(err)
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &setting, nil
}

func (r *settingRepository) List(ctx context.Context) (out []*model.Setting, err error) {
	defer func(start time.Time) { r.observe("setting_list", start, err) }(time.Now())

	out = []*model.Setting{}
	query := `SELECT setting_key, setting_value, updated_at FROM settings ORDER BY setting_key`
	if err = r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return out, nil
}

func (r *settingRepository) UpsertMany(ctx context.Context, values map[string]string) (err error) {
	defer func(start time.Time) { r.observe("setting_upsert", start, err) }(time.Now())

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	// Stable order keeps concurrent upserts from deadlocking on row locks.
	sort.Strings(keys)

	query := `
		INSERT INTO settings (setting_key, setting_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()
	`
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, query, k, values[k]); err != nil {
				return fmt.Errorf("failed to upsert setting %q: %w", k, err)
			}
		}
		return nil
	})
}
