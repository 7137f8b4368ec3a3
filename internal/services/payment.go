package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"abcbus/internal/domain"
	"abcbus/internal/domain/models"

	"github.com/google/uuid"
)

// PaymentGateway charges a booking and returns the provider's payment
// reference. Implementations may fail or time out; the caller leaves
// the booking pending in that case.
type PaymentGateway interface {
	Charge(ctx context.Context, booking models.Booking, method string) (string, error)
}

// SimulatedGateway stands in for PayMongo/GCash integration. It waits
// for Delay and approves everything, honoring context cancellation.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Charge(ctx context.Context, booking models.Booking, method string) (string, error) {
	delay := g.Delay
	if delay <= 0 {
		delay = 150 * time.Millisecond
	}
	select {
	case <-ctx.Done():
		return "", domain.InternalError{Msg: "payment timed out", Err: ctx.Err()}
	case <-time.After(delay):
	}
	ref := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "PAY" + ref[:16], nil
}

// RefGenerator produces human-shareable booking references. They must
// stay collision-resistant under concurrent reservations; the UNIQUE
// column on bookings is the last line of defense.
type RefGenerator interface {
	NewReference() string
}

// SequenceRefGenerator combines a millisecond timestamp with an atomic
// sequence, so references within the same millisecond still differ.
type SequenceRefGenerator struct {
	seq uint64
}

func (g *SequenceRefGenerator) NewReference() string {
	n := atomic.AddUint64(&g.seq, 1)
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("ABC%s%05d", ts, n%100000)
}
