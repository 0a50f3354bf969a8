package models

import "time"

// ChatHistory logs one inbound utterance and a short summary of the reply,
// written best-effort by the skill controller.
type ChatHistory struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time

	KakaoUserID string `gorm:"column:kakao_user_id;index;type:varchar(100)" json:"kakaoUserId"`
	CustomerID  *uint  `gorm:"column:customer_id;index" json:"customerId,omitempty"`
	Utterance   string `gorm:"column:utterance;type:text" json:"utterance"`
	Reply       string `gorm:"column:reply;type:text" json:"reply"`
}
