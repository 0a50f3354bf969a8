package repository

import (
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"motel-backoffice/models"
	"motel-backoffice/utils"
)

// Memory is a mutex-guarded in-process Store. It backs the test suites and
// doubles as a standalone fallback when no database is configured.
type Memory struct {
	mu sync.RWMutex

	rooms        map[uint]*models.Room
	reservations map[uint]*models.Reservation
	customers    map[uint]*models.Customer
	adjustments  map[uint]map[string]*models.RoomInventoryAdjustment // roomID -> yyyy-mm-dd
	pendings     map[string]*models.PendingReservation               // kakao user id
	messages     map[string]*models.ChatbotMessage                   // situation
	histories    []*models.ChatHistory
	types        map[uint]*models.ReservationType

	nextRoom        uint
	nextReservation uint
	nextCustomer    uint
	nextAdjustment  uint
	nextMessage     uint
	nextHistory     uint
	nextType        uint
}

func NewMemory() *Memory {
	return &Memory{
		rooms:        make(map[uint]*models.Room),
		reservations: make(map[uint]*models.Reservation),
		customers:    make(map[uint]*models.Customer),
		adjustments:  make(map[uint]map[string]*models.RoomInventoryAdjustment),
		pendings:     make(map[string]*models.PendingReservation),
		messages:     make(map[string]*models.ChatbotMessage),
		types:        make(map[uint]*models.ReservationType),
	}
}

func dateKey(t time.Time) string {
	return utils.Day(t).Format(utils.DateLayout)
}

// ---------------- Rooms ----------------

func (s *Memory) GetRoom(id uint) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *room
	return &cp, nil
}

func (s *Memory) GetRooms() ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Memory) CreateRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRoom++
	room.ID = s.nextRoom
	room.CreatedAt = time.Now()
	cp := *room
	s.rooms[room.ID] = &cp
	return nil
}

func (s *Memory) UpdateRoom(id uint, patch map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "name":
			room.Name = v.(string)
		case "inventory":
			room.Inventory = v.(int)
		case "discount_rate":
			room.DiscountRate = v.(*int)
		case "sort_order":
			room.SortOrder = v.(int)
		case "image_url":
			room.ImageURL = v.(string)
		case "check_in_time":
			room.CheckInTime = v.(string)
		case "check_out_time":
			room.CheckOutTime = v.(string)
		case "prices":
			room.Prices = v.(datatypes.JSONType[models.WeekPrices])
		}
	}
	room.UpdatedAt = time.Now()
	return nil
}

func (s *Memory) DeleteRoom(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(s.rooms, id)
	return nil
}

// ---------------- Reservations ----------------

func (s *Memory) GetReservation(id uint) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	if room, ok := s.rooms[r.RoomID]; ok {
		cp.Room = *room
	}
	if c, ok := s.customers[r.CustomerID]; ok {
		cp.Customer = *c
	}
	return &cp, nil
}

func (s *Memory) GetReservations() ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) GetReservationsByCustomer(customerID uint) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Reservation
	for _, r := range s.reservations {
		if r.CustomerID != customerID {
			continue
		}
		cp := *r
		if room, ok := s.rooms[r.RoomID]; ok {
			cp.Room = *room
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) AddReservation(r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReservation++
	r.ID = s.nextReservation
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	cp := *r
	s.reservations[r.ID] = &cp
	return nil
}

func (s *Memory) UpdateReservation(id uint, patch map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "status":
			r.Status = v.(string)
		case "admin_memo":
			r.AdminMemo = v.(string)
		case "reservation_type_id":
			r.ReservationTypeID = v.(*uint)
		case "guest_cancellation_confirmed":
			r.GuestCancellationConfirmed = v.(bool)
		case "room_id":
			r.RoomID = v.(uint)
		case "check_in":
			r.CheckIn = v.(time.Time)
		case "check_out":
			r.CheckOut = v.(time.Time)
		case "total_price":
			r.TotalPrice = v.(int)
		}
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (s *Memory) DeleteReservation(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[id]; !ok {
		return ErrNotFound
	}
	delete(s.reservations, id)
	return nil
}

// ---------------- Customers ----------------

func (s *Memory) GetCustomer(id uint) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Memory) GetCustomers() ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Memory) FindCustomerByPhone(phone string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) FindCustomerByKakaoID(userID string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.KakaoUserID != nil && *c.KakaoUserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) CreateCustomer(c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCustomer++
	c.ID = s.nextCustomer
	c.CreatedAt = time.Now()
	cp := *c
	s.customers[c.ID] = &cp
	return nil
}

func (s *Memory) UpdateCustomer(id uint, patch map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "name":
			c.Name = v.(string)
		case "phone":
			c.Phone = v.(string)
		case "memo":
			c.Memo = v.(string)
		case "kakao_user_id":
			c.KakaoUserID = v.(*string)
		}
	}
	c.UpdatedAt = time.Now()
	return nil
}

// ---------------- Inventory adjustments ----------------

func (s *Memory) GetAdjustment(roomID uint, date time.Time) (*models.RoomInventoryAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDate, ok := s.adjustments[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	a, ok := byDate[dateKey(date)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *Memory) GetAdjustmentsInRange(from, to time.Time) ([]models.RoomInventoryAdjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lo := utils.Day(from)
	hi := utils.Day(to)
	var out []models.RoomInventoryAdjustment
	for _, byDate := range s.adjustments {
		for _, a := range byDate {
			if a.Date.Before(lo) || a.Date.After(hi) {
				continue
			}
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *Memory) UpsertAdjustment(roomID uint, date time.Time, delta int) (*models.RoomInventoryAdjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byDate, ok := s.adjustments[roomID]
	if !ok {
		byDate = make(map[string]*models.RoomInventoryAdjustment)
		s.adjustments[roomID] = byDate
	}
	key := dateKey(date)
	if a, ok := byDate[key]; ok {
		a.Delta = delta
		a.UpdatedAt = time.Now()
		cp := *a
		return &cp, nil
	}
	s.nextAdjustment++
	a := &models.RoomInventoryAdjustment{
		ID:        s.nextAdjustment,
		CreatedAt: time.Now(),
		RoomID:    roomID,
		Date:      utils.Day(date),
		Delta:     delta,
	}
	byDate[key] = a
	cp := *a
	return &cp, nil
}

func (s *Memory) DeleteAdjustment(roomID uint, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byDate, ok := s.adjustments[roomID]; ok {
		delete(byDate, dateKey(date))
	}
	return nil
}

// ---------------- Pending reservations ----------------

func (s *Memory) GetPendingReservation(userID string) (*models.PendingReservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pendings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Memory) SavePendingReservation(p *models.PendingReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := *p
	s.pendings[p.KakaoUserID] = &cp
	return nil
}

func (s *Memory) DeletePendingReservation(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendings, userID)
	return nil
}

func (s *Memory) GetPendingReservations() ([]models.PendingReservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PendingReservation, 0, len(s.pendings))
	for _, p := range s.pendings {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Memory) DeleteExpiredPendingReservations(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for userID, p := range s.pendings {
		if p.CreatedAt.Before(before) {
			delete(s.pendings, userID)
			n++
		}
	}
	return n, nil
}

// ---------------- Chatbot messages ----------------

func (s *Memory) GetChatbotMessage(situation string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[situation]
	if !ok {
		return "", ErrNotFound
	}
	return m.Message, nil
}

func (s *Memory) GetChatbotMessages() ([]models.ChatbotMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatbotMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Situation < out[j].Situation })
	return out, nil
}

func (s *Memory) UpsertChatbotMessage(m *models.ChatbotMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.messages[m.Situation]; ok {
		existing.Message = m.Message
		existing.UpdatedAt = time.Now()
		m.ID = existing.ID
		return nil
	}
	s.nextMessage++
	m.ID = s.nextMessage
	m.CreatedAt = time.Now()
	cp := *m
	s.messages[m.Situation] = &cp
	return nil
}

func (s *Memory) DeleteChatbotMessage(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for situation, m := range s.messages {
		if m.ID == id {
			delete(s.messages, situation)
			return nil
		}
	}
	return ErrNotFound
}

// ---------------- Chat histories ----------------

func (s *Memory) AddChatHistory(h *models.ChatHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextHistory++
	h.ID = s.nextHistory
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	cp := *h
	s.histories = append(s.histories, &cp)
	return nil
}

func (s *Memory) GetChatHistories(kakaoUserID string) ([]models.ChatHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ChatHistory
	for _, h := range s.histories {
		if h.KakaoUserID == kakaoUserID {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ---------------- Reservation types ----------------

func (s *Memory) GetReservationType(id uint) (*models.ReservationType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Memory) GetReservationTypes() ([]models.ReservationType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ReservationType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Memory) CreateReservationType(t *models.ReservationType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		s.nextType++
		t.ID = s.nextType
	} else if t.ID > s.nextType {
		s.nextType = t.ID
	}
	t.CreatedAt = time.Now()
	cp := *t
	s.types[t.ID] = &cp
	return nil
}

func (s *Memory) UpdateReservationType(id uint, patch map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.types[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "name":
			t.Name = v.(string)
		case "color":
			t.Color = v.(string)
		}
	}
	return nil
}

func (s *Memory) DeleteReservationType(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.types[id]; !ok {
		return ErrNotFound
	}
	delete(s.types, id)
	return nil
}
