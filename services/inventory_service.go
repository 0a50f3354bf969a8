package services

import (
	"errors"
	"fmt"
	"time"

	"motel-backoffice/models"
	"motel-backoffice/repository"
	"motel-backoffice/utils"
)

var (
	ErrInventoryBelowSold = errors.New("inventory_below_sold")
	ErrInvalidDateRange   = errors.New("invalid_date_range")
	ErrRoomUnavailable    = errors.New("room_unavailable")
)

// InventoryService derives availability on read from the reservation set
// plus the adjustment overlay. Inventory is never decremented on booking.
type InventoryService struct {
	store repository.Store
}

func NewInventoryService(store repository.Store) *InventoryService {
	return &InventoryService{store: store}
}

// EffectiveInventory is the room's base inventory plus the date's adjustment
// delta, floored at zero.
func (s *InventoryService) EffectiveInventory(room *models.Room, date time.Time) int {
	eff := room.Inventory
	if a, err := s.store.GetAdjustment(room.ID, date); err == nil {
		eff += a.Delta
	}
	if eff < 0 {
		return 0
	}
	return eff
}

// occupiesDate reports whether the reservation's occupancy window includes
// the given day boundary.
func occupiesDate(r *models.Reservation, day time.Time) bool {
	for _, d := range utils.OccupiedDays(r.CheckIn, r.CheckOut) {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

func countSold(reservations []models.Reservation, roomID uint, day time.Time, excludeID uint) int {
	sold := 0
	for i := range reservations {
		r := &reservations[i]
		if r.RoomID != roomID || !r.Occupies() {
			continue
		}
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if occupiesDate(r, day) {
			sold++
		}
	}
	return sold
}

// SoldCount counts pending/confirmed reservations occupying the room on the
// given date.
func (s *InventoryService) SoldCount(roomID uint, date time.Time) (int, error) {
	reservations, err := s.store.GetReservations()
	if err != nil {
		return 0, err
	}
	return countSold(reservations, roomID, utils.Day(date), 0), nil
}

// Remaining is effective inventory minus sold count, never negative.
func (s *InventoryService) Remaining(room *models.Room, date time.Time) (int, error) {
	sold, err := s.SoldCount(room.ID, date)
	if err != nil {
		return 0, err
	}
	rem := s.EffectiveInventory(room, date) - sold
	if rem < 0 {
		return 0, nil
	}
	return rem, nil
}

// IsRoomAvailable checks every calendar day of the occupancy window. A
// single saturated day fails the whole booking. excludeID lets an
// update-in-place check ignore the reservation's own prior occupancy.
func (s *InventoryService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if room.Inventory <= 0 {
		return false, nil
	}

	days := utils.OccupiedDays(checkIn, checkOut)
	if len(days) == 0 {
		return false, nil
	}

	reservations, err := s.store.GetReservations()
	if err != nil {
		return false, err
	}

	for _, day := range days {
		eff := s.EffectiveInventory(room, day)
		if eff <= 0 {
			return false, nil
		}
		if countSold(reservations, roomID, day, excludeID) >= eff {
			return false, nil
		}
	}
	return true, nil
}

// SetAdjustment upserts the (room, date) delta, or removes the record when
// the delta resolves to zero. Rejects a delta that would push effective
// inventory below the date's current sold count.
func (s *InventoryService) SetAdjustment(roomID uint, date time.Time, delta int) (*models.RoomInventoryAdjustment, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		return nil, err
	}

	sold, err := s.SoldCount(roomID, date)
	if err != nil {
		return nil, err
	}
	eff := room.Inventory + delta
	if eff < 0 {
		eff = 0
	}
	if eff < sold {
		return nil, fmt.Errorf("%w: effective %d < sold %d", ErrInventoryBelowSold, eff, sold)
	}

	if delta == 0 {
		if err := s.store.DeleteAdjustment(roomID, date); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return s.store.UpsertAdjustment(roomID, date, delta)
}

// QuoteTotal prices a booking window for a room: the check-in weekday's
// day-use price for a same-day booking, otherwise the sum of each occupied
// night's weekday stay price. DiscountRate applies flat when present.
func (s *InventoryService) QuoteTotal(room *models.Room, checkIn, checkOut time.Time) int {
	prices := room.Prices.Data()
	var total int
	if utils.SameDay(checkIn, checkOut) {
		total = prices.For(checkIn.Weekday()).DayUse
	} else {
		for _, day := range utils.OccupiedDays(checkIn, checkOut) {
			total += prices.For(day.Weekday()).Stay
		}
	}
	if room.DiscountRate != nil && *room.DiscountRate > 0 && *room.DiscountRate < 100 {
		total = total * (100 - *room.DiscountRate) / 100
	}
	return total
}

// DayCell is one room/date slot of the admin inventory calendar.
type DayCell struct {
	Date      string `json:"date"`
	Sold      int    `json:"sold"`
	Effective int    `json:"effective"`
	Remaining int    `json:"remaining"`
	Delta     int    `json:"delta"`
}

// RoomCalendar is the per-room slice of the calendar matrix.
type RoomCalendar struct {
	RoomID   uint      `json:"roomId"`
	RoomName string    `json:"roomName"`
	Days     []DayCell `json:"days"`
}

// Calendar builds the per-room per-day {sold, remaining} matrix for the
// admin inventory page.
func (s *InventoryService) Calendar(from, to time.Time) ([]RoomCalendar, error) {
	lo := utils.Day(from)
	hi := utils.Day(to)
	if hi.Before(lo) {
		return nil, ErrInvalidDateRange
	}

	rooms, err := s.store.GetRooms()
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.GetReservations()
	if err != nil {
		return nil, err
	}
	adjustments, err := s.store.GetAdjustmentsInRange(lo, hi)
	if err != nil {
		return nil, err
	}

	deltas := make(map[uint]map[string]int)
	for _, a := range adjustments {
		byDate, ok := deltas[a.RoomID]
		if !ok {
			byDate = make(map[string]int)
			deltas[a.RoomID] = byDate
		}
		byDate[utils.Day(a.Date).Format(utils.DateLayout)] = a.Delta
	}

	out := make([]RoomCalendar, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		rc := RoomCalendar{RoomID: room.ID, RoomName: room.Name}
		for day := lo; !day.After(hi); day = day.AddDate(0, 0, 1) {
			key := day.Format(utils.DateLayout)
			delta := deltas[room.ID][key]
			eff := room.Inventory + delta
			if eff < 0 {
				eff = 0
			}
			sold := countSold(reservations, room.ID, day, 0)
			rem := eff - sold
			if rem < 0 {
				rem = 0
			}
			rc.Days = append(rc.Days, DayCell{
				Date:      key,
				Sold:      sold,
				Effective: eff,
				Remaining: rem,
				Delta:     delta,
			})
		}
		out = append(out, rc)
	}
	return out, nil
}
