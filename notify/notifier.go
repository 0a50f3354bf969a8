package notify

import "motel-backoffice/models"

// Notifier is the best-effort outbound side of a reservation event. Calls
// never block and never fail the caller; delivery errors are logged and
// dropped by implementations.
type Notifier interface {
	ReservationRequested(r *models.Reservation, room *models.Room, c *models.Customer)
	StatusChanged(r *models.Reservation, room *models.Room, c *models.Customer, newStatus string)
}

// Nop discards every notification. Used by tests and by boots with no
// vendor credentials configured.
type Nop struct{}

func (Nop) ReservationRequested(*models.Reservation, *models.Room, *models.Customer) {}
func (Nop) StatusChanged(*models.Reservation, *models.Room, *models.Customer, string) {}
