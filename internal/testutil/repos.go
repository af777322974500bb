// Package testutil provides in-memory repositories for service and
// handler tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/repository"
)

// PickupRepo is a map-backed repository.PickupRepository. Set Err to make
// every call fail.
type PickupRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.Pickup
	Err    error
	Now    func() time.Time
}

func NewPickupRepo() *PickupRepo {
	return &PickupRepo{rows: map[int64]*model.Pickup{}, Now: time.Now}
}

func clonePickup(p *model.Pickup) *model.Pickup {
	c := *p
	return &c
}

func (r *PickupRepo) Create(_ context.Context, p *model.Pickup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.nextID++
	p.ID = r.nextID
	if p.Status == "" {
		p.Status = model.DefaultPickupStatus
	}
	p.CreatedAt = r.Now()
	p.UpdatedAt = p.CreatedAt
	r.rows[p.ID] = clonePickup(p)
	return nil
}

func (r *PickupRepo) Get(_ context.Context, id int64) (*model.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePickup(p), nil
}

func (r *PickupRepo) List(_ context.Context, filter model.PickupFilter) ([]*model.PickupSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*model.PickupSummary{}
	for _, p := range r.rows {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PickupRepo) Update(_ context.Context, id int64, upd *model.PickupUpdate) (*model.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Empty() {
		return nil, errors.New("empty pickup update")
	}
	if upd.Status.Set {
		p.Status = model.DefaultPickupStatus
		if upd.Status.Value != nil {
			p.Status = *upd.Status.Value
		}
	}
	if upd.DriverID.Set {
		p.DriverID = upd.DriverID.Value
	}
	if upd.Notes.Set {
		p.Notes = upd.Notes.Value
	}
	p.UpdatedAt = r.later(p.UpdatedAt)
	return clonePickup(p), nil
}

func (r *PickupRepo) SetPhoto(_ context.Context, id int64, photoURL string) (*model.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.PhotoURL = &photoURL
	p.UpdatedAt = r.later(p.UpdatedAt)
	return clonePickup(p), nil
}

func (r *PickupRepo) PhotoURLs(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	urls := []string{}
	for _, p := range r.rows {
		if p.PhotoURL != nil {
			urls = append(urls, *p.PhotoURL)
		}
	}
	sort.Strings(urls)
	return urls, nil
}

// later keeps updated_at strictly increasing even when the clock is frozen.
func (r *PickupRepo) later(prev time.Time) time.Time {
	now := r.Now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// SettingRepo is a map-backed repository.SettingRepository.
type SettingRepo struct {
	mu     sync.Mutex
	values map[string]*model.Setting
	Err    error
	// Gets counts Get calls so tests can observe caching.
	Gets int
	// AfterGet, when set, runs after Get has read its value and before it
	// returns, outside the repo lock.
	AfterGet func()
}

func NewSettingRepo() *SettingRepo {
	return &SettingRepo{values: map[string]*model.Setting{}}
}

func (r *SettingRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	r.mu.Lock()
	hook := r.AfterGet
	s, err := r.get(key)
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return s, err
}

func (r *SettingRepo) get(key string) (*model.Setting, error) {
	r.Gets++
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.values[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (r *SettingRepo) List(context.Context) ([]*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*model.Setting{}
	for _, s := range r.values {
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *SettingRepo) UpsertMany(_ context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now()
	for k, v := range values {
		r.values[k] = &model.Setting{Key: k, Value: v, UpdatedAt: now}
	}
	return nil
}

// AdminRepo is a map-backed repository.AdminRepository.
type AdminRepo struct {
	mu     sync.Mutex
	nextID int64
	admins map[string]*model.Admin
}

func NewAdminRepo() *AdminRepo {
	return &AdminRepo{admins: map[string]*model.Admin{}}
}

func (r *AdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *AdminRepo) Upsert(_ context.Context, username, passwordHash string) (*model.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[username]
	if !ok {
		r.nextID++
		a = &model.Admin{ID: r.nextID, Username: username, CreatedAt: time.Now()}
		r.admins[username] = a
	}
	a.PasswordHash = passwordHash
	c := *a
	return &c, nil
}
