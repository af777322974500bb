package repository

import (
	"context"
	"errors"

	"github.com/labfetch/labfetch-api/internal/model"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

type PickupRepository interface {
	// Create inserts p and fills in its id and timestamps.
	Create(ctx context.Context, p *model.Pickup) error
	Get(ctx context.Context, id int64) (*model.Pickup, error)
	List(ctx context.Context, filter model.PickupFilter) ([]*model.PickupSummary, error)
	// Update writes the Set fields of upd, refreshes updated_at and returns
	// the stored record.
	Update(ctx context.Context, id int64, upd *model.PickupUpdate) (*model.Pickup, error)
	SetPhoto(ctx context.Context, id int64, photoURL string) (*model.Pickup, error)
	// PhotoURLs returns every photo reference currently stored.
	PhotoURLs(ctx context.Context) ([]string, error)
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]*model.Setting, error)
	// UpsertMany applies every pair in one transaction.
	UpsertMany(ctx context.Context, values map[string]string) error
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, username, passwordHash string) (*model.Admin, error)
}
