package chatbot

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	"motel-backoffice/kakao"
	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/services"
	"motel-backoffice/utils"
)

type notifierRecorder struct {
	requested     int
	statusChanges []string
}

func (n *notifierRecorder) ReservationRequested(*models.Reservation, *models.Room, *models.Customer) {
	n.requested++
}

func (n *notifierRecorder) StatusChanged(_ *models.Reservation, _ *models.Room, _ *models.Customer, status string) {
	n.statusChanges = append(n.statusChanges, status)
}

type fixture struct {
	handler  *Handler
	store    *repository.Memory
	notifier *notifierRecorder
	room     *models.Room
}

// newFixture pins "now" to Monday 2024-06-03 and seeds one room with a unit
// of inventory.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemory()
	notifier := &notifierRecorder{}

	inventory := services.NewInventoryService(store)
	reservations := services.NewReservationService(store, inventory, notifier)
	customers := services.NewCustomerService(store)

	h := NewHandler(store, inventory, reservations, customers)
	h.now = func() time.Time {
		return time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	}

	prices := models.WeekPrices{}
	for _, key := range []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"} {
		prices[key] = models.PricePair{Stay: 70000, DayUse: 30000}
	}
	room := &models.Room{
		Name:      "스탠다드",
		Prices:    datatypes.NewJSONType(prices),
		Inventory: 1,
	}
	if err := store.CreateRoom(room); err != nil {
		t.Fatal(err)
	}

	return &fixture{handler: h, store: store, notifier: notifier, room: room}
}

func skillReq(t *testing.T, userID, utterance string, extra map[string]interface{}) *kakao.SkillRequest {
	t.Helper()
	payload := map[string]interface{}{
		"userRequest": map[string]interface{}{
			"utterance": utterance,
			"user":      map[string]interface{}{"id": userID},
		},
	}
	if extra != nil {
		payload["action"] = map[string]interface{}{"clientExtra": extra}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	var req kakao.SkillRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatal(err)
	}
	return &req
}

func firstText(t *testing.T, resp *kakao.SkillResponse) string {
	t.Helper()
	if resp == nil || resp.Template == nil || len(resp.Template.Outputs) == 0 {
		t.Fatal("empty response")
	}
	st := resp.Template.Outputs[0].SimpleText
	if st == nil {
		t.Fatalf("first output is not simpleText: %+v", resp.Template.Outputs[0])
	}
	return st.Text
}

func firstCarousel(t *testing.T, resp *kakao.SkillResponse) *kakao.Carousel {
	t.Helper()
	if resp == nil || resp.Template == nil || len(resp.Template.Outputs) == 0 {
		t.Fatal("empty response")
	}
	c := resp.Template.Outputs[0].Carousel
	if c == nil {
		t.Fatalf("first output is not a carousel: %+v", resp.Template.Outputs[0])
	}
	return c
}

func TestUnknownUtteranceFallsBackToGreeting(t *testing.T) {
	f := newFixture(t)
	resp := f.handler.Handle(skillReq(t, "user-1", "뭐라도 해줘", nil))

	if got := firstText(t, resp); got != fallbackMessages[models.SituationGreeting] {
		t.Fatalf("greeting text = %q", got)
	}
	if len(resp.Template.QuickReplies) != 4 {
		t.Fatalf("greeting should carry 4 quick replies, got %d", len(resp.Template.QuickReplies))
	}
	if resp.Version != "2.0" {
		t.Fatalf("version = %q", resp.Version)
	}
}

func TestMissingUserIDGetsGreeting(t *testing.T) {
	f := newFixture(t)
	resp := f.handler.Handle(&kakao.SkillRequest{})
	if got := firstText(t, resp); got != fallbackMessages[models.SituationGreeting] {
		t.Fatalf("greeting text = %q", got)
	}
}

func TestDayUseTodayCarousel(t *testing.T) {
	f := newFixture(t)
	resp := f.handler.Handle(skillReq(t, "user-1", KeywordDayUseToday, nil))

	carousel := firstCarousel(t, resp)
	if len(carousel.Items) != 1 {
		t.Fatalf("expected 1 card, got %d", len(carousel.Items))
	}
	card := carousel.Items[0].CommerceCard
	if card == nil {
		t.Fatal("carousel item is not a commerce card")
	}
	if card.Price != 30000 {
		t.Fatalf("day-use price = %d, want 30000", card.Price)
	}

	extra := card.Buttons[0].Extra
	if extra["checkIn"] != "2024-06-03" || extra["checkOut"] != "2024-06-03" {
		t.Fatalf("button window = %v / %v", extra["checkIn"], extra["checkOut"])
	}
	if extra["type"] != extraTypeRoom {
		t.Fatalf("button extra type = %v", extra["type"])
	}
}

func TestStayTonightSpansOneNight(t *testing.T) {
	f := newFixture(t)
	resp := f.handler.Handle(skillReq(t, "user-1", KeywordStayTonight, nil))

	card := firstCarousel(t, resp).Items[0].CommerceCard
	if card.Price != 70000 {
		t.Fatalf("stay price = %d, want 70000", card.Price)
	}
	extra := card.Buttons[0].Extra
	if extra["checkIn"] != "2024-06-03" || extra["checkOut"] != "2024-06-04" {
		t.Fatalf("button window = %v / %v", extra["checkIn"], extra["checkOut"])
	}
}

func TestDiscountedCardShowsBothPrices(t *testing.T) {
	f := newFixture(t)
	rate := 10
	if err := f.store.UpdateRoom(f.room.ID, map[string]interface{}{"discount_rate": &rate}); err != nil {
		t.Fatal(err)
	}

	resp := f.handler.Handle(skillReq(t, "user-1", KeywordStayTonight, nil))
	card := firstCarousel(t, resp).Items[0].CommerceCard
	if card.Price != 70000 || card.DiscountedPrice != 63000 || card.Discount != 7000 {
		t.Fatalf("card pricing = %d/%d/%d", card.Price, card.DiscountedPrice, card.Discount)
	}
}

func TestSaturdayFlow(t *testing.T) {
	f := newFixture(t)

	resp := f.handler.Handle(skillReq(t, "user-1", KeywordSaturday, nil))
	// Monday 2024-06-03 resolves to Saturday 2024-06-08.
	if got := firstText(t, resp); !strings.Contains(got, "6월 8일") {
		t.Fatalf("saturday prompt = %q", got)
	}
	if len(resp.Template.QuickReplies) != 2 {
		t.Fatalf("expected 대실/숙박 choices, got %d", len(resp.Template.QuickReplies))
	}

	resp = f.handler.Handle(skillReq(t, "user-1", "토요일 숙박", map[string]interface{}{
		"type": extraTypeSaturday, "stayType": "숙박",
	}))
	extra := firstCarousel(t, resp).Items[0].CommerceCard.Buttons[0].Extra
	if extra["checkIn"] != "2024-06-08" || extra["checkOut"] != "2024-06-09" {
		t.Fatalf("saturday stay window = %v / %v", extra["checkIn"], extra["checkOut"])
	}

	resp = f.handler.Handle(skillReq(t, "user-1", "토요일 대실", map[string]interface{}{
		"type": extraTypeSaturday, "stayType": "대실",
	}))
	extra = firstCarousel(t, resp).Items[0].CommerceCard.Buttons[0].Extra
	if extra["checkIn"] != "2024-06-08" || extra["checkOut"] != "2024-06-08" {
		t.Fatalf("saturday day-use window = %v / %v", extra["checkIn"], extra["checkOut"])
	}
}

func TestSoldOutWindowShowsNoRooms(t *testing.T) {
	f := newFixture(t)
	r := &models.Reservation{
		RoomID:     f.room.ID,
		CustomerID: 1,
		CheckIn:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Status:     models.StatusConfirmed,
	}
	if err := f.store.AddReservation(r); err != nil {
		t.Fatal(err)
	}

	resp := f.handler.Handle(skillReq(t, "user-1", KeywordStayTonight, nil))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationNoRooms] {
		t.Fatalf("sold-out text = %q", got)
	}
}

func roomSelection(f *fixture) map[string]interface{} {
	return map[string]interface{}{
		"type":       extraTypeRoom,
		"roomId":     f.room.ID,
		"checkIn":    "2024-06-03",
		"checkOut":   "2024-06-04",
		"totalPrice": 70000,
	}
}

func TestRoomSelectionSavesPendingAndAsksPhone(t *testing.T) {
	f := newFixture(t)

	resp := f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", roomSelection(f)))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationAskPhone] {
		t.Fatalf("ask-phone text = %q", got)
	}
	if len(resp.Template.QuickReplies) != 1 || resp.Template.QuickReplies[0].Label != "취소" {
		t.Fatalf("expected a single 취소 quick reply, got %+v", resp.Template.QuickReplies)
	}

	pending, err := f.store.GetPendingReservation("user-1")
	if err != nil {
		t.Fatalf("pending not saved: %v", err)
	}
	if pending.RoomID != f.room.ID || pending.TotalPrice != 70000 {
		t.Fatalf("pending = %+v", pending)
	}
}

func TestRoomSelectionOverwritesPriorPending(t *testing.T) {
	f := newFixture(t)

	f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", roomSelection(f)))

	second := roomSelection(f)
	second["checkIn"] = "2024-06-08"
	second["checkOut"] = "2024-06-08"
	second["totalPrice"] = 30000
	f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", second))

	pending, err := f.store.GetPendingReservation("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if pending.TotalPrice != 30000 || !utils.SameDay(pending.CheckIn, pending.CheckOut) {
		t.Fatalf("second selection should win, got %+v", pending)
	}
}

func TestPhoneCreatesReservation(t *testing.T) {
	f := newFixture(t)
	f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", roomSelection(f)))

	resp := f.handler.Handle(skillReq(t, "user-1", "01012345678", nil))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationRequested] {
		t.Fatalf("requested text = %q", got)
	}

	reservations, err := f.store.GetReservations()
	if err != nil || len(reservations) != 1 {
		t.Fatalf("expected 1 reservation, got %d (%v)", len(reservations), err)
	}
	r := reservations[0]
	if r.Status != models.StatusPending || r.Source != models.SourceKakao || r.TotalPrice != 70000 {
		t.Fatalf("reservation = %+v", r)
	}

	customer, err := f.store.GetCustomer(r.CustomerID)
	if err != nil {
		t.Fatal(err)
	}
	if customer.Phone != "010-1234-5678" {
		t.Fatalf("customer phone = %q", customer.Phone)
	}
	if customer.KakaoUserID == nil || *customer.KakaoUserID != "user-1" {
		t.Fatalf("customer kakao id = %v", customer.KakaoUserID)
	}

	if _, err := f.store.GetPendingReservation("user-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("pending should be consumed, got %v", err)
	}
	if f.notifier.requested != 1 {
		t.Fatalf("admin notification count = %d", f.notifier.requested)
	}
}

func TestCancelClearsPendingWithoutBooking(t *testing.T) {
	f := newFixture(t)
	f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", roomSelection(f)))

	resp := f.handler.Handle(skillReq(t, "user-1", "취소", nil))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationPendingCancelled] {
		t.Fatalf("cancel text = %q", got)
	}
	if _, err := f.store.GetPendingReservation("user-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("pending should be cleared, got %v", err)
	}
	if reservations, _ := f.store.GetReservations(); len(reservations) != 0 {
		t.Fatalf("no reservation should exist, got %d", len(reservations))
	}
}

func TestBadPhoneKeepsPending(t *testing.T) {
	f := newFixture(t)
	f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", roomSelection(f)))

	resp := f.handler.Handle(skillReq(t, "user-1", "내일 갈게요", nil))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationPhoneFormatError] {
		t.Fatalf("format-error text = %q", got)
	}
	if _, err := f.store.GetPendingReservation("user-1"); err != nil {
		t.Fatalf("pending should survive a bad phone, got %v", err)
	}
}

func TestAdminTemplateOverridesFallback(t *testing.T) {
	f := newFixture(t)
	if err := f.store.UpsertChatbotMessage(&models.ChatbotMessage{
		Situation: models.SituationGreeting,
		Message:   "어서오세요, 모텔입니다.",
	}); err != nil {
		t.Fatal(err)
	}

	resp := f.handler.Handle(skillReq(t, "user-1", "아무말", nil))
	if got := firstText(t, resp); got != "어서오세요, 모텔입니다." {
		t.Fatalf("template override ignored, got %q", got)
	}
}

func TestHistoryListAndDetail(t *testing.T) {
	f := newFixture(t)
	uid := "user-1"
	customer := &models.Customer{Phone: "010-1234-5678", KakaoUserID: &uid}
	if err := f.store.CreateCustomer(customer); err != nil {
		t.Fatal(err)
	}
	r := &models.Reservation{
		RoomID:     f.room.ID,
		CustomerID: customer.ID,
		Source:     models.SourceKakao,
		CheckIn:    time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		Status:     models.StatusConfirmed,
		TotalPrice: 70000,
	}
	if err := f.store.AddReservation(r); err != nil {
		t.Fatal(err)
	}

	resp := f.handler.Handle(skillReq(t, uid, KeywordHistory, nil))
	list := resp.Template.Outputs[0].ListCard
	if list == nil {
		t.Fatalf("expected a list card, got %+v", resp.Template.Outputs[0])
	}
	if len(list.Items) != 1 {
		t.Fatalf("history items = %d", len(list.Items))
	}
	if !strings.Contains(list.Items[0].Description, "확정") {
		t.Fatalf("item description = %q", list.Items[0].Description)
	}

	resp = f.handler.Handle(skillReq(t, uid, "예약 1 상세", map[string]interface{}{
		"type": extraTypeHistory, "reservationId": r.ID,
	}))
	card := resp.Template.Outputs[0].TextCard
	if card == nil {
		t.Fatalf("expected a text card, got %+v", resp.Template.Outputs[0])
	}
	if !strings.Contains(card.Description, "70000원") {
		t.Fatalf("detail description = %q", card.Description)
	}
}

func TestLastUnitNotReofferedOnNonUTCServer(t *testing.T) {
	f := newFixture(t)
	kst := time.FixedZone("KST", 9*60*60)
	f.handler.now = func() time.Time {
		return time.Date(2024, 6, 3, 10, 0, 0, 0, kst)
	}

	// First user books the only unit for today's day-use, end to end.
	resp := f.handler.Handle(skillReq(t, "user-1", KeywordDayUseToday, nil))
	extra := firstCarousel(t, resp).Items[0].CommerceCard.Buttons[0].Extra
	if extra["checkIn"] != "2024-06-03" {
		t.Fatalf("button window = %v", extra["checkIn"])
	}
	f.handler.Handle(skillReq(t, "user-1", "스탠다드 예약", map[string]interface{}{
		"type":       extraTypeRoom,
		"roomId":     f.room.ID,
		"checkIn":    extra["checkIn"],
		"checkOut":   extra["checkOut"],
		"totalPrice": extra["totalPrice"],
	}))
	f.handler.Handle(skillReq(t, "user-1", "01012345678", nil))
	if reservations, _ := f.store.GetReservations(); len(reservations) != 1 {
		t.Fatalf("booking did not land, got %d reservations", len(reservations))
	}

	// The same day must now be sold out for everyone else.
	resp = f.handler.Handle(skillReq(t, "user-2", KeywordDayUseToday, nil))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationNoRooms] {
		t.Fatalf("sold unit was offered again, got %q", got)
	}
}

func TestHistoryDetailRequiresOwnership(t *testing.T) {
	f := newFixture(t)
	owner := "user-1"
	customer := &models.Customer{Phone: "010-1234-5678", KakaoUserID: &owner}
	if err := f.store.CreateCustomer(customer); err != nil {
		t.Fatal(err)
	}
	r := &models.Reservation{
		RoomID:     f.room.ID,
		CustomerID: customer.ID,
		Source:     models.SourceKakao,
		CheckIn:    time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		Status:     models.StatusConfirmed,
		TotalPrice: 70000,
	}
	if err := f.store.AddReservation(r); err != nil {
		t.Fatal(err)
	}

	other := "user-2"
	stranger := &models.Customer{Phone: "010-9999-8888", KakaoUserID: &other}
	if err := f.store.CreateCustomer(stranger); err != nil {
		t.Fatal(err)
	}

	forged := map[string]interface{}{"type": extraTypeHistory, "reservationId": r.ID}

	// Another registered user forging the id gets the greeting, not the card.
	resp := f.handler.Handle(skillReq(t, other, "예약 1 상세", forged))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationGreeting] {
		t.Fatalf("forged detail request leaked, got %q", got)
	}

	// A user with no customer record at all gets the greeting too.
	resp = f.handler.Handle(skillReq(t, "user-3", "예약 1 상세", forged))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationGreeting] {
		t.Fatalf("unregistered detail request leaked, got %q", got)
	}

	// The owner still sees the detail card.
	resp = f.handler.Handle(skillReq(t, owner, "예약 1 상세", forged))
	if resp.Template.Outputs[0].TextCard == nil {
		t.Fatalf("owner should see the detail card, got %+v", resp.Template.Outputs[0])
	}
}

func TestHistoryEmptyForUnknownUser(t *testing.T) {
	f := newFixture(t)
	resp := f.handler.Handle(skillReq(t, "stranger", KeywordHistory, nil))
	if got := firstText(t, resp); got != fallbackMessages[models.SituationHistoryEmpty] {
		t.Fatalf("empty-history text = %q", got)
	}
}
