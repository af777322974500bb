package model

import (
	"time"
)

type PickupStatus string

// Workflow order; cancelado is terminal.
const (
	PickupStatusPending   PickupStatus = "pendiente"
	PickupStatusAssigned  PickupStatus = "asignado"
	PickupStatusEnRoute   PickupStatus = "en_camino"
	PickupStatusCollected PickupStatus = "recolectado"
	PickupStatusAtLab     PickupStatus = "en_laboratorio"
	PickupStatusCompleted PickupStatus = "completado"
	PickupStatusCancelled PickupStatus = "cancelado"
)

// DefaultPickupStatus is assigned to every new request.
const DefaultPickupStatus = PickupStatusPending

var pickupStatuses = []PickupStatus{
	PickupStatusPending,
	PickupStatusAssigned,
	PickupStatusEnRoute,
	PickupStatusCollected,
	PickupStatusAtLab,
	PickupStatusCompleted,
	PickupStatusCancelled,
}

// PickupStatuses returns the statuses in workflow order.
func PickupStatuses() []PickupStatus {
	out := make([]PickupStatus, len(pickupStatuses))
	copy(out, pickupStatuses)
	return out
}

func (s PickupStatus) Valid() bool {
	for _, v := range pickupStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Shift string

const (
	ShiftMorning   Shift = "manana"
	ShiftAfternoon Shift = "tarde"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}

// Pickup is one sample-collection request.
type Pickup struct {
	ID              int64        `json:"id" db:"id"`
	PetName         string       `json:"nombre_mascota" db:"nombre_mascota"`
	Contact         string       `json:"tipo_muestra" db:"tipo_muestra"`
	Department      string       `json:"departamento" db:"departamento"`
	City            string       `json:"ciudad" db:"ciudad"`
	ViaType         string       `json:"tipo_via" db:"tipo_via"`
	ViaNumber       string       `json:"num_via_p1" db:"num_via_p1"`
	ViaLetter       *string      `json:"letra_via" db:"letra_via"`
	Bis             bool         `json:"bis" db:"bis"`
	BisLetter       *string      `json:"letra_bis" db:"letra_bis"`
	Quadrant1       *string      `json:"sufijo_cardinal1" db:"sufijo_cardinal1"`
	GeneratorNumber string       `json:"num_via2" db:"num_via2"`
	GeneratorLetter *string      `json:"letra_via2" db:"letra_via2"`
	Quadrant2       *string      `json:"sufijo_cardinal2" db:"sufijo_cardinal2"`
	PlaqueNumber    string       `json:"num3" db:"num3"`
	Complement      *string      `json:"complemento" db:"complemento"`
	FullAddress     string       `json:"direccion_completa" db:"direccion_completa"`
	PreferredDate   *Date        `json:"fecha_preferida" db:"fecha_preferida"`
	PreferredShift  *Shift       `json:"turno_preferido" db:"turno_preferido"`
	Status          PickupStatus `json:"status" db:"status"`
	DriverID        *int64       `json:"driver_id" db:"driver_id"`
	Notes           *string      `json:"notes" db:"notes"`
	PhotoURL        *string      `json:"photo_url" db:"photo_url"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// PickupSummary holds the columns shown in the admin list.
type PickupSummary struct {
	ID             int64        `json:"id" db:"id"`
	PetName        string       `json:"nombre_mascota" db:"nombre_mascota"`
	Contact        string       `json:"tipo_muestra" db:"tipo_muestra"`
	City           string       `json:"ciudad" db:"ciudad"`
	Department     string       `json:"departamento" db:"departamento"`
	FullAddress    string       `json:"direccion_completa" db:"direccion_completa"`
	PreferredDate  *Date        `json:"fecha_preferida" db:"fecha_preferida"`
	PreferredShift *Shift       `json:"turno_preferido" db:"turno_preferido"`
	Status         PickupStatus `json:"status" db:"status"`
	DriverID       *int64       `json:"driver_id" db:"driver_id"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// Summary projects a full record onto the list columns.
func (p *Pickup) Summary() *PickupSummary {
	return &PickupSummary{
		ID:             p.ID,
		PetName:        p.PetName,
		Contact:        p.Contact,
		City:           p.City,
		Department:     p.Department,
		FullAddress:    p.FullAddress,
		PreferredDate:  p.PreferredDate,
		PreferredShift: p.PreferredShift,
		Status:         p.Status,
		DriverID:       p.DriverID,
		CreatedAt:      p.CreatedAt,
	}
}

type PickupFilter struct {
	Status PickupStatus
}

// PickupUpdate is the admin patch; only Set fields are written.
type PickupUpdate struct {
	Status   Optional[PickupStatus] `json:"status"`
	DriverID Optional[int64]        `json:"driver_id"`
	Notes    Optional[string]       `json:"notes"`
}

func (u *PickupUpdate) Empty() bool {
	return !u.Status.Set && !u.DriverID.Set && !u.Notes.Set
}
