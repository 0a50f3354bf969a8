package repository

import (
	"errors"
	"time"

	"motel-backoffice/models"
)

// ErrNotFound is returned by lookups that match no record, regardless of
// the backing store.
var ErrNotFound = errors.New("record_not_found")

// Store is the persistence surface consumed by the services and the chatbot.
// Implementations guarantee per-record atomicity only; there is no
// cross-record transaction spanning an availability check and a write.
type Store interface {
	// Rooms
	GetRoom(id uint) (*models.Room, error)
	GetRooms() ([]models.Room, error)
	CreateRoom(room *models.Room) error
	UpdateRoom(id uint, patch map[string]interface{}) error
	DeleteRoom(id uint) error

	// Reservations
	GetReservation(id uint) (*models.Reservation, error)
	GetReservations() ([]models.Reservation, error)
	GetReservationsByCustomer(customerID uint) ([]models.Reservation, error)
	AddReservation(r *models.Reservation) error
	UpdateReservation(id uint, patch map[string]interface{}) error
	DeleteReservation(id uint) error

	// Customers
	GetCustomer(id uint) (*models.Customer, error)
	GetCustomers() ([]models.Customer, error)
	FindCustomerByPhone(phone string) (*models.Customer, error)
	FindCustomerByKakaoID(userID string) (*models.Customer, error)
	CreateCustomer(c *models.Customer) error
	UpdateCustomer(id uint, patch map[string]interface{}) error

	// Inventory adjustments
	GetAdjustment(roomID uint, date time.Time) (*models.RoomInventoryAdjustment, error)
	GetAdjustmentsInRange(from, to time.Time) ([]models.RoomInventoryAdjustment, error)
	UpsertAdjustment(roomID uint, date time.Time, delta int) (*models.RoomInventoryAdjustment, error)
	DeleteAdjustment(roomID uint, date time.Time) error

	// Pending reservations (one slot per chat user, last write wins)
	GetPendingReservation(userID string) (*models.PendingReservation, error)
	SavePendingReservation(p *models.PendingReservation) error
	DeletePendingReservation(userID string) error
	GetPendingReservations() ([]models.PendingReservation, error)
	DeleteExpiredPendingReservations(before time.Time) (int64, error)

	// Chatbot message templates
	GetChatbotMessage(situation string) (string, error)
	GetChatbotMessages() ([]models.ChatbotMessage, error)
	UpsertChatbotMessage(m *models.ChatbotMessage) error
	DeleteChatbotMessage(id uint) error

	// Chat histories
	AddChatHistory(h *models.ChatHistory) error
	GetChatHistories(kakaoUserID string) ([]models.ChatHistory, error)

	// Reservation types
	GetReservationType(id uint) (*models.ReservationType, error)
	GetReservationTypes() ([]models.ReservationType, error)
	CreateReservationType(t *models.ReservationType) error
	UpdateReservationType(id uint, patch map[string]interface{}) error
	DeleteReservationType(id uint) error
}
