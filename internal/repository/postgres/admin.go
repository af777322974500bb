package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
)

type adminRepository struct {
	BaseRepository
}

func NewAdminRepository(base BaseRepository) repository.AdminRepository {
	return &adminRepository{base}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (a *model.Admin, err error) {
	defer func(start time.Time) { r.observe("admin_get", start, err) }(time.Now())

	var admin model.Admin
	query := `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`
	if err = r.db.GetContext(ctx, &admin, query, username); err != nil {
		err = notFound(err)
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) Upsert(ctx context.Context, username, passwordHash string) (a *model.Admin, err error) {
	defer func(start time.Time) { r.observe("admin_upsert", start, err) }(time.Now())

	query := `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id, username, password_hash, created_at
	`
	var admin model.Admin
	if err = r.db.GetContext(ctx, &admin, query, username, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to upsert admin: %w", err)
	}
	return &admin, nil
}
