package services

import (
	"errors"
	"testing"

	"motel-backoffice/models"
	"motel-backoffice/repository"
)

type statusRecorder struct {
	requested int
	changes   []string
}

func (n *statusRecorder) ReservationRequested(*models.Reservation, *models.Room, *models.Customer) {
	n.requested++
}

func (n *statusRecorder) StatusChanged(_ *models.Reservation, _ *models.Room, _ *models.Customer, status string) {
	n.changes = append(n.changes, status)
}

func newReservationFixture(t *testing.T) (*ReservationService, *repository.Memory, *statusRecorder) {
	t.Helper()
	store := repository.NewMemory()
	rec := &statusRecorder{}
	svc := NewReservationService(store, NewInventoryService(store), rec)
	if err := store.CreateReservationType(&models.ReservationType{
		ID: models.DefaultReservationTypeID, Name: "기본",
	}); err != nil {
		t.Fatal(err)
	}
	return svc, store, rec
}

func seedCustomer(t *testing.T, store *repository.Memory) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: "김손님", Phone: "010-1234-5678"}
	if err := store.CreateCustomer(c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCreateManualConfirmsAndPrices(t *testing.T) {
	svc, store, _ := newReservationFixture(t)
	room := seedRoom(t, store, 1)
	customer := seedCustomer(t, store)

	r, err := svc.CreateManual(room.ID, customer.ID, date("2024-06-03"), date("2024-06-05"), 0, nil, "전화 예약")
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != models.StatusConfirmed || r.Source != models.SourceManual {
		t.Fatalf("reservation = %+v", r)
	}
	if r.TotalPrice != 140000 {
		t.Fatalf("auto-quoted price = %d, want 140000", r.TotalPrice)
	}
	if r.ReservationTypeID == nil || *r.ReservationTypeID != models.DefaultReservationTypeID {
		t.Fatalf("type id = %v", r.ReservationTypeID)
	}
}

func TestCreateManualRejectsSaturatedWindow(t *testing.T) {
	svc, store, _ := newReservationFixture(t)
	room := seedRoom(t, store, 1)
	customer := seedCustomer(t, store)
	seedReservation(t, store, room.ID, "2024-06-03", "2024-06-04", models.StatusPending)

	_, err := svc.CreateManual(room.ID, customer.ID, date("2024-06-03"), date("2024-06-04"), 0, nil, "")
	if !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("want ErrRoomUnavailable, got %v", err)
	}
}

func TestCreateManualRejectsInvertedDates(t *testing.T) {
	svc, store, _ := newReservationFixture(t)
	room := seedRoom(t, store, 1)
	customer := seedCustomer(t, store)

	_, err := svc.CreateManual(room.ID, customer.ID, date("2024-06-05"), date("2024-06-03"), 0, nil, "")
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("want ErrInvalidDateRange, got %v", err)
	}
}

func TestCreateFromChatStartsPendingAndNotifies(t *testing.T) {
	svc, store, rec := newReservationFixture(t)
	room := seedRoom(t, store, 1)
	customer := seedCustomer(t, store)

	r, err := svc.CreateFromChat(customer, &models.PendingReservation{
		KakaoUserID: "u1",
		RoomID:      room.ID,
		CheckIn:     date("2024-06-03"),
		CheckOut:    date("2024-06-04"),
		TotalPrice:  70000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != models.StatusPending || r.Source != models.SourceKakao {
		t.Fatalf("reservation = %+v", r)
	}
	if rec.requested != 1 {
		t.Fatalf("admin notification count = %d", rec.requested)
	}
}

func TestStatusTransitions(t *testing.T) {
	svc, store, rec := newReservationFixture(t)
	room := seedRoom(t, store, 1)

	pending := seedReservation(t, store, room.ID, "2024-06-03", "2024-06-04", models.StatusPending)
	if _, err := svc.UpdateStatus(pending.ID, models.StatusConfirmed); err != nil {
		t.Fatalf("pending→confirmed: %v", err)
	}
	if _, err := svc.UpdateStatus(pending.ID, models.StatusCancelledByAdmin); err != nil {
		t.Fatalf("confirmed→cancelled_by_admin: %v", err)
	}

	// Terminal states accept nothing further.
	if _, err := svc.UpdateStatus(pending.ID, models.StatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition out of terminal state, got %v", err)
	}

	other := seedReservation(t, store, room.ID, "2024-06-10", "2024-06-11", models.StatusPending)
	if _, err := svc.UpdateStatus(other.ID, models.StatusCancelledByAdmin); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending→cancelled_by_admin must be illegal, got %v", err)
	}

	want := []string{models.StatusConfirmed, models.StatusCancelledByAdmin}
	if len(rec.changes) != len(want) {
		t.Fatalf("notifications = %v", rec.changes)
	}
	for i, s := range want {
		if rec.changes[i] != s {
			t.Fatalf("notifications = %v, want %v", rec.changes, want)
		}
	}
}

func TestUpdatePatchEditsDisplayFields(t *testing.T) {
	svc, store, _ := newReservationFixture(t)
	room := seedRoom(t, store, 1)
	r := seedReservation(t, store, room.ID, "2024-06-03", "2024-06-04", models.StatusCancelledByGuest)

	memo := "환불 완료"
	confirmed := true
	got, err := svc.Update(r.ID, UpdatePatch{AdminMemo: &memo, GuestCancellationConfirmed: &confirmed})
	if err != nil {
		t.Fatal(err)
	}
	if got.AdminMemo != memo || !got.GuestCancellationConfirmed {
		t.Fatalf("patched reservation = %+v", got)
	}

	bogus := uint(42)
	if _, err := svc.Update(r.ID, UpdatePatch{ReservationTypeID: &bogus}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("unknown type id should fail, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	svc, store, _ := newReservationFixture(t)
	room := seedRoom(t, store, 2)
	other := seedRoom(t, store, 2)
	seedReservation(t, store, room.ID, "2024-06-01", "2024-06-02", models.StatusPending)
	seedReservation(t, store, room.ID, "2024-06-10", "2024-06-11", models.StatusConfirmed)
	seedReservation(t, store, other.ID, "2024-06-01", "2024-06-02", models.StatusConfirmed)

	got, err := svc.List(ListFilter{Status: models.StatusConfirmed})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("status filter matched %d", len(got))
	}

	got, _ = svc.List(ListFilter{RoomID: other.ID})
	if len(got) != 1 {
		t.Fatalf("room filter matched %d", len(got))
	}

	from := date("2024-06-05")
	to := date("2024-06-15")
	got, _ = svc.List(ListFilter{From: &from, To: &to})
	if len(got) != 1 || got[0].RoomID != room.ID {
		t.Fatalf("window filter matched %+v", got)
	}
}
