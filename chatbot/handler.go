// Package chatbot implements the per-user conversation state machine behind
// the Kakao skill webhook. Each inbound request produces exactly one reply
// and applies at most one state mutation: saving or clearing the user's
// pending reservation, or creating a real one.
package chatbot

import (
	"errors"
	"fmt"
	"log"
	"time"

	"motel-backoffice/kakao"
	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/services"
	"motel-backoffice/utils"
)

type Handler struct {
	store        repository.Store
	inventory    *services.InventoryService
	reservations *services.ReservationService
	customers    *services.CustomerService

	now func() time.Time
}

func NewHandler(
	store repository.Store,
	inventory *services.InventoryService,
	reservations *services.ReservationService,
	customers *services.CustomerService,
) *Handler {
	return &Handler{
		store:        store,
		inventory:    inventory,
		reservations: reservations,
		customers:    customers,
		now:          time.Now,
	}
}

// Handle routes one inbound request. It never errors outward: malformed or
// ambiguous input resolves to the greeting reply.
func (h *Handler) Handle(req *kakao.SkillRequest) *kakao.SkillResponse {
	userID := req.UserRequest.User.ID
	if userID == "" {
		return h.greeting()
	}

	switch ev := ParseEvent(req).(type) {
	case RoomSelected:
		return h.onRoomSelected(userID, ev)
	case SaturdayTypeChosen:
		return h.onSaturdayType(userID, ev)
	case ReservationHistoryItemChosen:
		return h.onHistoryItem(userID, ev)
	case DateRangeChosen:
		return h.roomCarousel(utils.Day(ev.CheckIn), utils.Day(ev.CheckOut))
	case DateChosen:
		day := utils.Day(ev.Date)
		return h.roomCarousel(day, day)
	case PlainUtterance:
		return h.onUtterance(userID, ev.Text)
	default:
		return h.greeting()
	}
}

// onUtterance is the Idle/AwaitingPhone split: an outstanding pending
// reservation turns the next utterance into a phone-number candidate.
func (h *Handler) onUtterance(userID, text string) *kakao.SkillResponse {
	pending, err := h.store.GetPendingReservation(userID)
	if err == nil {
		return h.onAwaitingPhone(userID, pending, text)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("chatbot: pending lookup failed for %s: %v", userID, err)
	}

	if route, ok := keywordRoutes[normalizeKeyword(text)]; ok {
		return route(h, userID)
	}
	return h.greeting()
}

// ---------------- Idle keyword flows ----------------

func (h *Handler) onDayUseToday(string) *kakao.SkillResponse {
	today := utils.Day(h.now())
	return h.roomCarousel(today, today)
}

func (h *Handler) onStayTonight(string) *kakao.SkillResponse {
	today := utils.Day(h.now())
	return h.roomCarousel(today, today.AddDate(0, 0, 1))
}

func (h *Handler) onSaturday(string) *kakao.SkillResponse {
	saturday := utils.NextSaturday(h.now())
	label := fmt.Sprintf("%d월 %d일 토요일, 대실과 숙박 중 선택해 주세요.",
		int(saturday.Month()), saturday.Day())
	return kakao.Text(label).WithQuickReplies(
		kakao.MessageReply("대실", "토요일 대실", map[string]interface{}{
			"type": extraTypeSaturday, "stayType": "대실",
		}),
		kakao.MessageReply("숙박", "토요일 숙박", map[string]interface{}{
			"type": extraTypeSaturday, "stayType": "숙박",
		}),
	)
}

func (h *Handler) onBook(string) *kakao.SkillResponse {
	return kakao.Text("원하시는 예약 종류를 선택해 주세요.").WithQuickReplies(
		kakao.MessageReply(KeywordDayUseToday, "", nil),
		kakao.MessageReply(KeywordStayTonight, "", nil),
		kakao.MessageReply(KeywordSaturday, "", nil),
	)
}

func (h *Handler) onSaturdayType(userID string, ev SaturdayTypeChosen) *kakao.SkillResponse {
	saturday := utils.NextSaturday(h.now())
	if ev.StayType == "숙박" {
		return h.roomCarousel(saturday, saturday.AddDate(0, 0, 1))
	}
	return h.roomCarousel(saturday, saturday)
}

// ---------------- Room offers ----------------

// roomCarousel emits one commerce card per room still available for the
// window. The booking button's payload is exactly what RoomSelected parses.
func (h *Handler) roomCarousel(checkIn, checkOut time.Time) *kakao.SkillResponse {
	if utils.Day(checkOut).Before(utils.Day(checkIn)) {
		return h.greeting()
	}

	rooms, err := h.store.GetRooms()
	if err != nil {
		log.Printf("chatbot: room listing failed: %v", err)
		return kakao.Text(h.message(models.SituationNoRooms))
	}

	label := utils.StayLabel(checkIn, checkOut)
	var cards []kakao.CommerceCard
	for i := range rooms {
		room := &rooms[i]
		ok, err := h.inventory.IsRoomAvailable(room.ID, checkIn, checkOut, 0)
		if err != nil {
			log.Printf("chatbot: availability check failed for room %d: %v", room.ID, err)
			continue
		}
		if !ok {
			continue
		}

		total := h.inventory.QuoteTotal(room, checkIn, checkOut)
		undiscounted := *room
		undiscounted.DiscountRate = nil
		base := h.inventory.QuoteTotal(&undiscounted, checkIn, checkOut)

		card := kakao.CommerceCard{
			Description: fmt.Sprintf("%s · %s", room.Name, label),
			Price:       base,
			Currency:    "won",
			Thumbnails:  []kakao.Thumbnail{{ImageURL: room.ImageURL}},
			Buttons: []kakao.Button{
				kakao.MessageButton("이 객실 예약", room.Name+" 예약", map[string]interface{}{
					"type":       extraTypeRoom,
					"roomId":     room.ID,
					"checkIn":    utils.Day(checkIn).Format(utils.DateLayout),
					"checkOut":   utils.Day(checkOut).Format(utils.DateLayout),
					"totalPrice": total,
				}),
			},
		}
		if base > total {
			card.Discount = base - total
			card.DiscountedPrice = total
		}
		cards = append(cards, card)
	}

	if len(cards) == 0 {
		return kakao.Text(h.message(models.SituationNoRooms))
	}
	return kakao.NewResponse(kakao.CommerceCarousel(cards...))
}

// ---------------- Pending reservation flow ----------------

// onRoomSelected saves the one-slot pending reservation (silently
// overwriting any prior slot) and asks for a phone number.
func (h *Handler) onRoomSelected(userID string, ev RoomSelected) *kakao.SkillResponse {
	p := &models.PendingReservation{
		KakaoUserID: userID,
		RoomID:      ev.RoomID,
		CheckIn:     utils.Day(ev.CheckIn),
		CheckOut:    utils.Day(ev.CheckOut),
		TotalPrice:  ev.TotalPrice,
		CreatedAt:   h.now(),
	}
	if err := h.store.SavePendingReservation(p); err != nil {
		log.Printf("chatbot: pending save failed for %s: %v", userID, err)
		return h.greeting()
	}
	return kakao.Text(h.message(models.SituationAskPhone)).
		WithQuickReplies(kakao.MessageReply("취소", "", nil))
}

func (h *Handler) onAwaitingPhone(userID string, pending *models.PendingReservation, text string) *kakao.SkillResponse {
	if isCancel(text) {
		if err := h.store.DeletePendingReservation(userID); err != nil {
			log.Printf("chatbot: pending delete failed for %s: %v", userID, err)
		}
		return kakao.Text(h.message(models.SituationPendingCancelled))
	}

	phone, ok := utils.NormalizePhone(text)
	if !ok {
		return kakao.Text(h.message(models.SituationPhoneFormatError)).
			WithQuickReplies(kakao.MessageReply("취소", "", nil))
	}

	customer, err := h.customers.GetOrCreateChatCustomer(userID, phone)
	if err != nil {
		log.Printf("chatbot: customer resolve failed for %s: %v", userID, err)
		return kakao.Text(h.message(models.SituationPhoneFormatError)).
			WithQuickReplies(kakao.MessageReply("취소", "", nil))
	}

	if _, err := h.reservations.CreateFromChat(customer, pending); err != nil {
		log.Printf("chatbot: reservation create failed for %s: %v", userID, err)
		return kakao.Text(h.message(models.SituationNoRooms))
	}
	if err := h.store.DeletePendingReservation(userID); err != nil {
		log.Printf("chatbot: pending consume failed for %s: %v", userID, err)
	}
	return kakao.Text(h.message(models.SituationRequested))
}

// ---------------- Reservation history ----------------

const historyLimit = 5

var statusLabels = map[string]string{
	models.StatusPending:          "대기중",
	models.StatusConfirmed:        "확정",
	models.StatusRejected:         "거절됨",
	models.StatusCancelledByGuest: "취소됨",
	models.StatusCancelledByAdmin: "취소됨",
}

func (h *Handler) onHistory(userID string) *kakao.SkillResponse {
	customer, err := h.store.FindCustomerByKakaoID(userID)
	if err != nil {
		return kakao.Text(h.message(models.SituationHistoryEmpty))
	}
	reservations, err := h.store.GetReservationsByCustomer(customer.ID)
	if err != nil || len(reservations) == 0 {
		return kakao.Text(h.message(models.SituationHistoryEmpty))
	}
	if len(reservations) > historyLimit {
		reservations = reservations[:historyLimit]
	}

	items := make([]kakao.ListItem, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		items = append(items, kakao.ListItem{
			Title:       fmt.Sprintf("%s · %s", r.Room.Name, utils.StayLabel(r.CheckIn, r.CheckOut)),
			Description: fmt.Sprintf("%s · %d원", statusLabels[r.Status], r.TotalPrice),
			Action:      "message",
			MessageText: fmt.Sprintf("예약 %d 상세", r.ID),
			Extra: map[string]interface{}{
				"type":          extraTypeHistory,
				"reservationId": r.ID,
			},
		})
	}

	return kakao.NewResponse(kakao.Output{ListCard: &kakao.ListCard{
		Header: kakao.ListItem{Title: "예약 내역"},
		Items:  items,
	}})
}

// onHistoryItem renders the detail card. The payload's reservation id is
// caller-supplied, so the reservation must belong to the requesting user.
func (h *Handler) onHistoryItem(userID string, ev ReservationHistoryItemChosen) *kakao.SkillResponse {
	customer, err := h.store.FindCustomerByKakaoID(userID)
	if err != nil {
		return h.greeting()
	}
	r, err := h.store.GetReservation(ev.ReservationID)
	if err != nil || r.CustomerID != customer.ID {
		return h.greeting()
	}
	return kakao.NewResponse(kakao.Output{TextCard: &kakao.TextCard{
		Title: fmt.Sprintf("%s 예약", r.Room.Name),
		Description: fmt.Sprintf("%s\n상태: %s\n금액: %d원",
			utils.StayLabel(r.CheckIn, r.CheckOut), statusLabels[r.Status], r.TotalPrice),
	}})
}

// ---------------- Fallback ----------------

func (h *Handler) greeting() *kakao.SkillResponse {
	return kakao.Text(h.message(models.SituationGreeting)).WithQuickReplies(
		kakao.MessageReply(KeywordDayUseToday, "", nil),
		kakao.MessageReply(KeywordStayTonight, "", nil),
		kakao.MessageReply(KeywordSaturday, "", nil),
		kakao.MessageReply(KeywordHistory, "", nil),
	)
}
