package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultReservationTypeID is seeded on boot and protected from edit/delete.
const DefaultReservationTypeID uint = 1

type ReservationType struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `json:"name" gorm:"type:varchar(50)"`
	Color string `json:"color" gorm:"type:varchar(20)"`
}
