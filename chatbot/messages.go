package chatbot

import "motel-backoffice/models"

// Hardcoded fallbacks per situation. A missing template row must never
// dead-end the conversation.
var fallbackMessages = map[string]string{
	models.SituationGreeting:         "안녕하세요! 무엇을 도와드릴까요?\n아래 버튼으로 예약을 시작할 수 있어요.",
	models.SituationAskPhone:         "예약자분의 휴대폰 번호를 입력해 주세요.\n(예: 010-1234-5678)",
	models.SituationPhoneFormatError: "휴대폰 번호 형식이 올바르지 않습니다.\n다시 입력해 주세요.",
	models.SituationRequested:        "예약 요청이 접수되었습니다.\n확정되면 알림으로 알려드릴게요!",
	models.SituationPendingCancelled: "진행 중이던 예약이 취소되었습니다.",
	models.SituationNoRooms:          "죄송합니다. 해당 날짜에는 예약 가능한 객실이 없습니다.",
	models.SituationHistoryEmpty:     "예약 내역이 없습니다.",
}

// message looks the situation up in the admin-editable template table and
// substitutes the hardcoded fallback on any failure.
func (h *Handler) message(situation string) string {
	if msg, err := h.store.GetChatbotMessage(situation); err == nil && msg != "" {
		return msg
	}
	return fallbackMessages[situation]
}
