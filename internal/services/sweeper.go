package services

import (
	"context"
	"fmt"
	"time"

	"abcbus/internal/domain/models"
	"abcbus/internal/utils"
)

// expiredCanceller is what the sweeper needs from the booking engine.
type expiredCanceller interface {
	CancelExpired(ctx context.Context) ([]models.Booking, error)
}

// Sweeper cancels abandoned pending bookings on an interval so their
// held seats go back to the pool.
type Sweeper struct {
	Bookings expiredCanceller
	Interval time.Duration
}

// Run blocks until ctx is cancelled.
func (s Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	utils.LogEvent("", "sweeper", "start", fmt.Sprintf("interval=%s", interval))
	for {
		select {
		case <-ctx.Done():
			utils.LogEvent("", "sweeper", "stop", "")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s Sweeper) tick(ctx context.Context) {
	expired, err := s.Bookings.CancelExpired(ctx)
	if err != nil {
		utils.LogEvent("", "sweeper", "sweep_failed", err.Error())
		return
	}
	if len(expired) > 0 {
		utils.LogEvent("", "sweeper", "sweep", fmt.Sprintf("released=%d", len(expired)))
	}
}
