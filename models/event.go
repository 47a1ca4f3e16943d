package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Location    string         `json:"location"`
	StartsAt    time.Time      `json:"starts_at" gorm:"index;not null"`
	EndsAt      time.Time      `json:"ends_at"`
	AllDay      bool           `json:"all_day"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// End returns EndsAt, or the end of the start day when no end is set.
func (e Event) End() time.Time {
	if !e.EndsAt.IsZero() && e.EndsAt.After(e.StartsAt) {
		return e.EndsAt
	}
	y, m, d := e.StartsAt.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, e.StartsAt.Location())
}
