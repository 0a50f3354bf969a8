package models

import "time"

// PendingReservation is the one-slot scratch record bridging "room selected
// in chat" and "phone number confirmed". At most one per chat user; a new
// room selection overwrites the prior one. Swept after a TTL by jobs.
type PendingReservation struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time

	KakaoUserID string    `gorm:"column:kakao_user_id;uniqueIndex;type:varchar(100)" json:"kakaoUserId"`
	RoomID      uint      `gorm:"column:room_id" json:"roomId"`
	CheckIn     time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut    time.Time `gorm:"column:check_out" json:"checkOut"`
	TotalPrice  int       `gorm:"column:total_price" json:"totalPrice"`
}
