package notify

import (
	"fmt"
	"log"
	"os"

	"motel-backoffice/models"
	"motel-backoffice/utils"
)

// Dispatcher fans reservation events out to the SMS and Alimtalk channels.
// Every send runs in its own goroutine; failures are logged and dropped so
// the triggering state change can never be blocked or rolled back.
type Dispatcher struct {
	sms        *SMSClient
	alimtalk   *AlimtalkClient
	adminPhone string
}

func NewDispatcherFromEnv() *Dispatcher {
	return &Dispatcher{
		sms:        NewSMSClientFromEnv(),
		alimtalk:   NewAlimtalkClientFromEnv(),
		adminPhone: os.Getenv("ADMIN_PHONE"),
	}
}

func (d *Dispatcher) vars(r *models.Reservation, room *models.Room, c *models.Customer) map[string]string {
	return map[string]string{
		"room":  room.Name,
		"dates": utils.StayLabel(r.CheckIn, r.CheckOut),
		"price": fmt.Sprintf("%d", r.TotalPrice),
		"name":  c.Name,
		"phone": c.Phone,
	}
}

// ReservationRequested notifies the admin that a chat user asked to book.
func (d *Dispatcher) ReservationRequested(r *models.Reservation, room *models.Room, c *models.Customer) {
	vars := d.vars(r, room, c)
	go func() {
		msg := Substitute("[예약요청] {room} {dates} {price}원 / {name} {phone}", vars)
		if err := d.sms.Send(d.adminPhone, msg); err != nil {
			log.Printf("notify: admin sms failed: %v", err)
		}
		if err := d.alimtalk.Send(PurposeRequestAdmin, d.adminPhone, vars); err != nil {
			log.Printf("notify: admin alimtalk failed: %v", err)
		}
	}()
}

// StatusChanged notifies the affected party of an admin status transition.
func (d *Dispatcher) StatusChanged(r *models.Reservation, room *models.Room, c *models.Customer, newStatus string) {
	vars := d.vars(r, room, c)
	var purpose, to string
	switch newStatus {
	case models.StatusConfirmed:
		purpose, to = PurposeConfirmGuest, c.Phone
	case models.StatusRejected:
		purpose, to = PurposeRejectGuest, c.Phone
	case models.StatusCancelledByAdmin:
		purpose, to = PurposeAdminCancelGuest, c.Phone
	case models.StatusCancelledByGuest:
		purpose, to = PurposeGuestCancelAdmin, d.adminPhone
	default:
		return
	}
	go func() {
		if err := d.alimtalk.Send(purpose, to, vars); err != nil {
			log.Printf("notify: alimtalk %s failed: %v", purpose, err)
		}
	}()
}
