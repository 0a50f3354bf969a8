package chatbot

import (
	"strings"

	"motel-backoffice/kakao"
)

// Fixed utterance keywords, matched exactly (case-insensitive) when the
// user has no pending reservation.
const (
	KeywordDayUseToday = "오늘대실"
	KeywordStayTonight = "오늘숙박"
	KeywordSaturday    = "토요일예약"
	KeywordBook        = "예약하기"
	KeywordHistory     = "예약내역"
)

var cancelKeywords = map[string]bool{
	"취소":   true,
	"예약취소": true,
}

func normalizeKeyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isCancel(utterance string) bool {
	return cancelKeywords[normalizeKeyword(utterance)]
}

// keywordRoutes maps a normalized keyword to its handler.
type keywordHandler func(h *Handler, userID string) *kakao.SkillResponse

var keywordRoutes = map[string]keywordHandler{
	normalizeKeyword(KeywordDayUseToday): (*Handler).onDayUseToday,
	normalizeKeyword(KeywordStayTonight): (*Handler).onStayTonight,
	normalizeKeyword(KeywordSaturday):    (*Handler).onSaturday,
	normalizeKeyword(KeywordBook):        (*Handler).onBook,
	normalizeKeyword(KeywordHistory):     (*Handler).onHistory,
}
