package model

import "time"

// PublicScheduleMessageKey is the only setting readable without credentials.
const PublicScheduleMessageKey = "pickup_schedule_message"

type Setting struct {
	Key       string    `json:"key" db:"setting_key"`
	Value     string    `json:"value" db:"setting_value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
