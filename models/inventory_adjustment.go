package models

import "time"

// RoomInventoryAdjustment is a signed correction to a room's base inventory
// for exactly one calendar date. A delta resolving to 0 removes the row
// instead of storing a zero.
type RoomInventoryAdjustment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	RoomID uint      `gorm:"column:room_id;uniqueIndex:idx_room_date" json:"roomId"`
	Date   time.Time `gorm:"column:date;type:date;uniqueIndex:idx_room_date" json:"date"`
	Delta  int       `gorm:"column:delta" json:"delta"`
}
