package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
)

const pickupColumns = `
	id, nombre_mascota, tipo_muestra, departamento, ciudad, tipo_via, num_via_p1,
	letra_via, bis, letra_bis, sufijo_cardinal1, num_via2, letra_via2, sufijo_cardinal2,
	num3, complemento, direccion_completa, fecha_preferida, turno_preferido, status,
	driver_id, notes, photo_url, created_at, updated_at`

type pickupRepository struct {
	BaseRepository
}

func NewPickupRepository(base BaseRepository) repository.PickupRepository {
	return &pickupRepository{base}
}

func (r *pickupRepository) Create(ctx context.Context, p *model.Pickup) (err error) {
	defer func(start time.Time) { r.observe("pickup_create", start, err) }(time.Now())

	if p.Status == "" {
		p.Status = model.DefaultPickupStatus
	}

	query := `
		INSERT INTO pickups (
			nombre_mascota, tipo_muestra, departamento, ciudad, tipo_via, num_via_p1,
			letra_via, bis, letra_bis, sufijo_cardinal1, num_via2, letra_via2,
			sufijo_cardinal2, num3, complemento, direccion_completa, fecha_preferida,
			turno_preferido, status
		) VALUES (
			:nombre_mascota, :tipo_muestra, :departamento, :ciudad, :tipo_via, :num_via_p1,
			:letra_via, :bis, :letra_bis, :sufijo_cardinal1, :num_via2, :letra_via2,
			:sufijo_cardinal2, :num3, :complemento, :direccion_completa, :fecha_preferida,
			:turno_preferido, :status
		)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("failed to create pickup: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err == nil {
			err = fmt.Errorf("insert returned no row")
		}
		return fmt.Errorf("failed to create pickup: %w", err)
	}
	if err = rows.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to scan created pickup: %w", err)
	}
	return nil
}

func (r *pickupRepository) Get(ctx context.Context, id int64) (p *model.Pickup, err error) {
	defer func(start time.Time) { r.observe("pickup_get", start, err) }(time.Now())

	var pickup model.Pickup
	query := `SELECT ` + pickupColumns + ` FROM pickups WHERE id = $1`
	if err = r.db.GetContext(ctx, &pickup, query, id); err != nil {
		err = notFound(err)
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get pickup: %w", err)
	}
	return &pickup, nil
}

func (r *pickupRepository) List(ctx context.Context, filter model.PickupFilter) (out []*model.PickupSummary, err error) {
	defer func(start time.Time) { r.observe("pickup_list", start, err) }(time.Now())

	query := `
		SELECT id, nombre_mascota, tipo_muestra, ciudad, departamento, direccion_completa,
			fecha_preferida, turno_preferido, status, driver_id, created_at
		FROM pickups
	`
	var args []interface{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	out = []*model.PickupSummary{}
	if err = r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pickups: %w", err)
	}
	return out, nil
}

func (r *pickupRepository) Update(ctx context.Context, id int64, upd *model.PickupUpdate) (p *model.Pickup, err error) {
	defer func(start time.Time) { r.observe("pickup_update", start, err) }(time.Now())

	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Status.Set {
		// status is NOT NULL; an explicit null falls back to the default.
		status := model.DefaultPickupStatus
		if upd.Status.Value != nil {
			status = *upd.Status.Value
		}
		add("status", status)
	}
	if upd.DriverID.Set {
		add("driver_id", upd.DriverID.Value)
	}
	if upd.Notes.Set {
		add("notes", upd.Notes.Value)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("empty pickup update")
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE pickups SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), pickupColumns)

	var pickup model.Pickup
	if err = r.db.GetContext(ctx, &pickup, query, args...); err != nil {
		err = notFound(err)
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update pickup: %w", err)
	}
	return &pickup, nil
}

func (r *pickupRepository) SetPhoto(ctx context.Context, id int64, photoURL string) (p *model.Pickup, err error) {
	defer func(start time.Time) { r.observe("pickup_set_photo", start, err) }(time.Now())

	query := `UPDATE pickups SET photo_url = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + pickupColumns

	var pickup model.Pickup
	if err = r.db.GetContext(ctx, &pickup, query, photoURL, id); err != nil {
		err = notFound(err)
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set pickup photo: %w", err)
	}
	return &pickup, nil
}

func (r *pickupRepository) PhotoURLs(ctx context.Context) (urls []string, err error) {
	defer func(start time.Time) { r.observe("pickup_photo_urls", start, err) }(time.Now())

	urls = []string{}
	query := `SELECT photo_url FROM pickups WHERE photo_url IS NOT NULL`
	if err = r.db.SelectContext(ctx, &urls, query); err != nil {
		return nil, fmt.Errorf("failed to list photo urls: %w", err)
	}
	return urls, nil
}
