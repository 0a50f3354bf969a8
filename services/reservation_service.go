package services

import (
	"errors"
	"time"

	"motel-backoffice/models"
	"motel-backoffice/notify"
	"motel-backoffice/repository"
	"motel-backoffice/utils"
)

var ErrInvalidTransition = errors.New("invalid_status_transition")

// legalTransitions maps a current status to the statuses an admin (or a
// guest cancellation relayed from outside) may move it to.
var legalTransitions = map[string][]string{
	models.StatusPending:   {models.StatusConfirmed, models.StatusRejected, models.StatusCancelledByGuest},
	models.StatusConfirmed: {models.StatusCancelledByAdmin, models.StatusCancelledByGuest},
}

type ReservationService struct {
	store     repository.Store
	inventory *InventoryService
	notifier  notify.Notifier
}

func NewReservationService(store repository.Store, inventory *InventoryService, notifier notify.Notifier) *ReservationService {
	return &ReservationService{store: store, inventory: inventory, notifier: notifier}
}

// ListFilter narrows the admin reservation listing.
type ListFilter struct {
	Status string
	RoomID uint
	From   *time.Time
	To     *time.Time
}

func (s *ReservationService) List(f ListFilter) ([]models.Reservation, error) {
	all, err := s.store.GetReservations()
	if err != nil {
		return nil, err
	}
	out := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.RoomID != 0 && r.RoomID != f.RoomID {
			continue
		}
		if f.From != nil && utils.Day(r.CheckOut).Before(utils.Day(*f.From)) {
			continue
		}
		if f.To != nil && utils.Day(r.CheckIn).After(utils.Day(*f.To)) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *ReservationService) Get(id uint) (*models.Reservation, error) {
	return s.store.GetReservation(id)
}

// CreateManual books a room on behalf of a walk-in or phone guest. Manual
// entries are confirmed immediately. Availability is checked right before
// the insert; there is no transaction spanning both, so two simultaneous
// bookings for the last unit can still both land (documented behavior).
func (s *ReservationService) CreateManual(roomID, customerID uint, checkIn, checkOut time.Time, totalPrice int, typeID *uint, memo string) (*models.Reservation, error) {
	if utils.Day(checkOut).Before(utils.Day(checkIn)) {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.store.GetCustomer(customerID); err != nil {
		return nil, err
	}
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	ok, err := s.inventory.IsRoomAvailable(roomID, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRoomUnavailable
	}

	if totalPrice <= 0 {
		totalPrice = s.inventory.QuoteTotal(room, checkIn, checkOut)
	}
	if typeID == nil {
		def := models.DefaultReservationTypeID
		typeID = &def
	}

	r := &models.Reservation{
		RoomID:            roomID,
		CustomerID:        customerID,
		Source:            models.SourceManual,
		ReservationTypeID: typeID,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		Status:            models.StatusConfirmed,
		TotalPrice:        totalPrice,
		AdminMemo:         memo,
	}
	if err := s.store.AddReservation(r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateFromChat persists the reservation a chat user requested. Chat
// reservations start pending and notify the admin out-of-band.
func (s *ReservationService) CreateFromChat(customer *models.Customer, p *models.PendingReservation) (*models.Reservation, error) {
	room, err := s.store.GetRoom(p.RoomID)
	if err != nil {
		return nil, err
	}

	r := &models.Reservation{
		RoomID:     p.RoomID,
		CustomerID: customer.ID,
		Source:     models.SourceKakao,
		CheckIn:    p.CheckIn,
		CheckOut:   p.CheckOut,
		Status:     models.StatusPending,
		TotalPrice: p.TotalPrice,
	}
	if err := s.store.AddReservation(r); err != nil {
		return nil, err
	}

	s.notifier.ReservationRequested(r, room, customer)
	return r, nil
}

// UpdateStatus applies an admin-triggered status transition and fires the
// matching guest/admin notification. Illegal transitions are rejected.
func (s *ReservationService) UpdateStatus(id uint, newStatus string) (*models.Reservation, error) {
	r, err := s.store.GetReservation(id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, to := range legalTransitions[r.Status] {
		if to == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidTransition
	}

	if err := s.store.UpdateReservation(id, map[string]interface{}{"status": newStatus}); err != nil {
		return nil, err
	}
	r.Status = newStatus

	s.notifier.StatusChanged(r, &r.Room, &r.Customer, newStatus)
	return r, nil
}

// UpdatePatch edits display-only fields: memo, reservation type, the guest
// cancellation acknowledgement marker. None affect availability.
type UpdatePatch struct {
	AdminMemo                  *string
	ReservationTypeID          *uint
	GuestCancellationConfirmed *bool
}

func (s *ReservationService) Update(id uint, patch UpdatePatch) (*models.Reservation, error) {
	fields := map[string]interface{}{}
	if patch.AdminMemo != nil {
		fields["admin_memo"] = *patch.AdminMemo
	}
	if patch.ReservationTypeID != nil {
		if _, err := s.store.GetReservationType(*patch.ReservationTypeID); err != nil {
			return nil, err
		}
		fields["reservation_type_id"] = patch.ReservationTypeID
	}
	if patch.GuestCancellationConfirmed != nil {
		fields["guest_cancellation_confirmed"] = *patch.GuestCancellationConfirmed
	}
	if len(fields) > 0 {
		if err := s.store.UpdateReservation(id, fields); err != nil {
			return nil, err
		}
	}
	return s.store.GetReservation(id)
}

func (s *ReservationService) Delete(id uint) error {
	return s.store.DeleteReservation(id)
}
