package services

import (
	"context"
	"testing"
	"time"

	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

type stubCanceller struct {
	calls   int
	expired []models.Booking
	err     error
}

func (s *stubCanceller) CancelExpired(ctx context.Context) ([]models.Booking, error) {
	s.calls++
	return s.expired, s.err
}

func TestSweeperTickReleasesExpired(t *testing.T) {
	stub := &stubCanceller{expired: []models.Booking{{ID: 1}, {ID: 2}}}
	sw := Sweeper{Bookings: stub}

	sw.tick(context.Background())
	if stub.calls != 1 {
		t.Fatalf("calls: %d", stub.calls)
	}
}

func TestSweeperTickSurvivesErrors(t *testing.T) {
	stub := &stubCanceller{err: domain.InternalError{Msg: "db down"}}
	sw := Sweeper{Bookings: stub}

	sw.tick(context.Background())
	sw.tick(context.Background())
	if stub.calls != 2 {
		t.Fatalf("a failing sweep stopped the loop: calls=%d", stub.calls)
	}
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	stub := &stubCanceller{}
	sw := Sweeper{Bookings: stub, Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop on context cancel")
	}
	if stub.calls == 0 {
		t.Fatalf("sweeper never ticked")
	}
}
