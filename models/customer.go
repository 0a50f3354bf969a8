package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string `json:"name" gorm:"type:varchar(100)"`
	Phone string `json:"phone" gorm:"type:varchar(20);index"`

	// Chat-platform user id; set on first contact through the skill server.
	KakaoUserID *string `json:"kakaoUserId,omitempty" gorm:"column:kakao_user_id;uniqueIndex;type:varchar(100)"`

	Memo string `json:"memo" gorm:"type:text"`
}
