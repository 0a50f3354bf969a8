package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"motel-backoffice/models"
	"motel-backoffice/utils"
)

// Gorm is the MySQL-backed Store used in production.
type Gorm struct {
	DB *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{DB: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ---------------- Rooms ----------------

func (s *Gorm) GetRoom(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *Gorm) GetRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("sort_order ASC, id ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Gorm) CreateRoom(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *Gorm) UpdateRoom(id uint, patch map[string]interface{}) error {
	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteRoom(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Reservations ----------------

func (s *Gorm) GetReservation(id uint) (*models.Reservation, error) {
	var r models.Reservation
	err := s.DB.Preload("Room").Preload("Customer").Preload("ReservationType").
		First(&r, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Gorm) GetReservations() ([]models.Reservation, error) {
	var rs []models.Reservation
	err := s.DB.Preload("Room").Preload("Customer").Preload("ReservationType").
		Order("created_at DESC").Find(&rs).Error
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *Gorm) GetReservationsByCustomer(customerID uint) ([]models.Reservation, error) {
	var rs []models.Reservation
	err := s.DB.Preload("Room").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&rs).Error
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *Gorm) AddReservation(r *models.Reservation) error {
	return s.DB.Omit("Room", "Customer", "ReservationType").Create(r).Error
}

func (s *Gorm) UpdateReservation(id uint, patch map[string]interface{}) error {
	res := s.DB.Model(&models.Reservation{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteReservation(id uint) error {
	res := s.DB.Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Customers ----------------

func (s *Gorm) GetCustomer(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Gorm) GetCustomers() ([]models.Customer, error) {
	var cs []models.Customer
	if err := s.DB.Order("id DESC").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *Gorm) FindCustomerByPhone(phone string) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Gorm) FindCustomerByKakaoID(userID string) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.Where("kakao_user_id = ?", userID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Gorm) CreateCustomer(c *models.Customer) error {
	return s.DB.Create(c).Error
}

func (s *Gorm) UpdateCustomer(id uint, patch map[string]interface{}) error {
	res := s.DB.Model(&models.Customer{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Inventory adjustments ----------------

func (s *Gorm) GetAdjustment(roomID uint, date time.Time) (*models.RoomInventoryAdjustment, error) {
	var a models.RoomInventoryAdjustment
	err := s.DB.Where("room_id = ? AND date = ?", roomID, utils.Day(date)).First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Gorm) GetAdjustmentsInRange(from, to time.Time) ([]models.RoomInventoryAdjustment, error) {
	var as []models.RoomInventoryAdjustment
	err := s.DB.Where("date >= ? AND date <= ?", utils.Day(from), utils.Day(to)).Find(&as).Error
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (s *Gorm) UpsertAdjustment(roomID uint, date time.Time, delta int) (*models.RoomInventoryAdjustment, error) {
	a := models.RoomInventoryAdjustment{
		RoomID: roomID,
		Date:   utils.Day(date),
		Delta:  delta,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"delta", "updated_at"}),
	}).Create(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Gorm) DeleteAdjustment(roomID uint, date time.Time) error {
	return s.DB.Where("room_id = ? AND date = ?", roomID, utils.Day(date)).
		Delete(&models.RoomInventoryAdjustment{}).Error
}

// ---------------- Pending reservations ----------------

func (s *Gorm) GetPendingReservation(userID string) (*models.PendingReservation, error) {
	var p models.PendingReservation
	if err := s.DB.Where("kakao_user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// SavePendingReservation upserts by chat user id: a new room selection
// silently overwrites the prior slot.
func (s *Gorm) SavePendingReservation(p *models.PendingReservation) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "kakao_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"room_id", "check_in", "check_out", "total_price", "created_at",
		}),
	}).Create(p).Error
}

func (s *Gorm) DeletePendingReservation(userID string) error {
	return s.DB.Where("kakao_user_id = ?", userID).
		Delete(&models.PendingReservation{}).Error
}

func (s *Gorm) GetPendingReservations() ([]models.PendingReservation, error) {
	var ps []models.PendingReservation
	if err := s.DB.Order("created_at DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *Gorm) DeleteExpiredPendingReservations(before time.Time) (int64, error) {
	res := s.DB.Where("created_at < ?", before).Delete(&models.PendingReservation{})
	return res.RowsAffected, res.Error
}

// ---------------- Chatbot messages ----------------

func (s *Gorm) GetChatbotMessage(situation string) (string, error) {
	var m models.ChatbotMessage
	if err := s.DB.Where("situation = ?", situation).First(&m).Error; err != nil {
		return "", translate(err)
	}
	return m.Message, nil
}

func (s *Gorm) GetChatbotMessages() ([]models.ChatbotMessage, error) {
	var ms []models.ChatbotMessage
	if err := s.DB.Order("situation ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (s *Gorm) UpsertChatbotMessage(m *models.ChatbotMessage) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "situation"}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "updated_at"}),
	}).Create(m).Error
}

func (s *Gorm) DeleteChatbotMessage(id uint) error {
	res := s.DB.Delete(&models.ChatbotMessage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Chat histories ----------------

func (s *Gorm) AddChatHistory(h *models.ChatHistory) error {
	return s.DB.Create(h).Error
}

func (s *Gorm) GetChatHistories(kakaoUserID string) ([]models.ChatHistory, error) {
	var hs []models.ChatHistory
	err := s.DB.Where("kakao_user_id = ?", kakaoUserID).
		Order("created_at DESC").Find(&hs).Error
	if err != nil {
		return nil, err
	}
	return hs, nil
}

// ---------------- Reservation types ----------------

func (s *Gorm) GetReservationType(id uint) (*models.ReservationType, error) {
	var t models.ReservationType
	if err := s.DB.First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *Gorm) GetReservationTypes() ([]models.ReservationType, error) {
	var ts []models.ReservationType
	if err := s.DB.Order("id ASC").Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *Gorm) CreateReservationType(t *models.ReservationType) error {
	return s.DB.Create(t).Error
}

func (s *Gorm) UpdateReservationType(id uint, patch map[string]interface{}) error {
	res := s.DB.Model(&models.ReservationType{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Gorm) DeleteReservationType(id uint) error {
	res := s.DB.Delete(&models.ReservationType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
