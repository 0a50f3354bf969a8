package jobs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"motel-backoffice/repository"
)

const defaultPendingTTLMinutes = 10

func pendingTTL() time.Duration {
	if raw := os.Getenv("PENDING_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultPendingTTLMinutes * time.Minute
}

// Init registers the scheduled jobs and starts the cron runner. The only
// job today is the pending-reservation sweep: chat users who selected a room
// but never confirmed a phone number get their slot cleared after the TTL.
func Init(c *cron.Cron, store repository.Store) error {
	ttl := pendingTTL()

	_, err := c.AddFunc("* * * * *", func() {
		deleted, err := store.DeleteExpiredPendingReservations(time.Now().Add(-ttl))
		if err != nil {
			log.Printf("jobs: pending sweep failed: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("jobs: swept %d expired pending reservations", deleted)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Printf("jobs: cron started (pending TTL %v)", ttl)
	return nil
}
