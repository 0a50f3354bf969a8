package models

import "time"

// ChatbotMessage is an admin-editable reply template, keyed by the
// conversational situation it answers. The chatbot substitutes a hardcoded
// fallback when a situation has no row.
type ChatbotMessage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Situation string `gorm:"column:situation;uniqueIndex;type:varchar(50)" json:"situation"`
	Message   string `gorm:"column:message;type:text" json:"message"`
}

// Situations consulted by the chatbot.
const (
	SituationGreeting         = "greeting"
	SituationAskPhone         = "ask_phone"
	SituationPhoneFormatError = "phone_format_error"
	SituationRequested        = "reservation_requested"
	SituationPendingCancelled = "pending_cancelled"
	SituationNoRooms          = "no_rooms_available"
	SituationHistoryEmpty     = "history_empty"
)
