package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Only StatusPending and StatusConfirmed occupy
// inventory; the rejected/cancelled states never count.
const (
	StatusPending          = "pending"
	StatusConfirmed        = "confirmed"
	StatusRejected         = "rejected"
	StatusCancelledByGuest = "cancelled_by_guest"
	StatusCancelledByAdmin = "cancelled_by_admin"
)

// Reservation sources.
const (
	SourceKakao  = "kakao"
	SourceManual = "manual"
)

type Reservation struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID     uint `gorm:"column:room_id;index" json:"roomId"`
	CustomerID uint `gorm:"column:customer_id;index" json:"customerId"`

	Source            string `gorm:"column:source;size:16" json:"source"`
	ReservationTypeID *uint  `gorm:"column:reservation_type_id" json:"reservationTypeId,omitempty"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`

	Status     string `gorm:"column:status;size:32;index" json:"status"`
	TotalPrice int    `gorm:"column:total_price" json:"totalPrice"`
	AdminMemo  string `gorm:"column:admin_memo;type:text" json:"adminMemo"`

	// Admin acknowledgement marker for guest cancellations; display-only.
	GuestCancellationConfirmed bool `gorm:"column:guest_cancellation_confirmed;default:false" json:"guestCancellationConfirmed"`

	Room            Room             `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Customer        Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ReservationType *ReservationType `gorm:"foreignKey:ReservationTypeID" json:"reservationType,omitempty"`
}

// Occupies reports whether the reservation counts toward inventory.
func (r *Reservation) Occupies() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}
