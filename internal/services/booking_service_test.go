package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
	"abcbus/internal/seed"

	_ "github.com/mattn/go-sqlite3"
)

// newTestDB gives each test its own in-memory database with the full
// schema and fixture routes/buses, but no generated schedules.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := seed.New(db)
	s.Days = 0
	if err := s.Run(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return db
}

// insertTrip adds a schedule on route 1 (Manila-Baguio, fare 580) with
// bus 1 (capacity 40) and the given seat count.
func insertTrip(t *testing.T, db *sql.DB, seats int) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO schedules (route_id, bus_id, departure_time, arrival_time, departure_date, available_seats)
		VALUES (1, 1, '08:00', '14:00', '2026-09-01', ?)`, seats)
	if err != nil {
		t.Fatalf("insert schedule: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("schedule id: %v", err)
	}
	return id
}

func availableSeats(t *testing.T, db *sql.DB, scheduleID int64) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT available_seats FROM schedules WHERE id = ?`, scheduleID).Scan(&n); err != nil {
		t.Fatalf("read available_seats: %v", err)
	}
	return n
}

func newTestService(db *sql.DB) BookingService {
	return BookingService{
		DB:      db,
		Gateway: SimulatedGateway{Delay: time.Millisecond},
	}
}

func TestReserveComputesAmountPerSeat(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	ctx := context.Background()

	for count := 1; count <= 4; count++ {
		scheduleID := insertTrip(t, db, 40)
		seats := make([]string, 0, count)
		for i := 0; i < count; i++ {
			seats = append(seats, fmt.Sprintf("A%d", i+1))
		}

		b, err := svc.Reserve(ctx, scheduleID, seats, models.DemoUserID)
		if err != nil {
			t.Fatalf("reserve %d seats: %v", count, err)
		}
		want := 580.00 * float64(count)
		if b.TotalAmount != want {
			t.Fatalf("amount for %d seats: got %.2f want %.2f", count, b.TotalAmount, want)
		}
		if b.Status != models.BookingStatusPending || b.PaymentStatus != models.PaymentStatusPending {
			t.Fatalf("new booking not pending: status=%s payment=%s", b.Status, b.PaymentStatus)
		}
		if !strings.HasPrefix(b.BookingReference, "ABC") {
			t.Fatalf("unexpected reference %q", b.BookingReference)
		}
		if got := availableSeats(t, db, scheduleID); got != 40-count {
			t.Fatalf("seats after reserve: got %d want %d", got, 40-count)
		}
	}
}

func TestReserveNormalizesSeatLabels(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)

	b, err := svc.Reserve(context.Background(), scheduleID, []string{" a1 ", "b2"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if len(b.SeatNumbers) != 2 || b.SeatNumbers[0] != "A1" || b.SeatNumbers[1] != "B2" {
		t.Fatalf("labels not normalized: %v", b.SeatNumbers)
	}
}

func TestReserveRejectsBadSeatLists(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 40)
	ctx := context.Background()

	cases := [][]string{
		nil,
		{"A1", "a1"},
		{"A1", "  "},
		{"A1", "A2", "A3", "A4", "A5"},
	}
	for _, seats := range cases {
		if _, err := svc.Reserve(ctx, scheduleID, seats, models.DemoUserID); !domain.IsValidation(err) {
			t.Fatalf("seats %v: expected validation error, got %v", seats, err)
		}
	}
	if got := availableSeats(t, db, scheduleID); got != 40 {
		t.Fatalf("rejected reservations touched the counter: %d", got)
	}
}

func TestReserveSeatAlreadyTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	if _, err := svc.Reserve(ctx, scheduleID, []string{"A1", "A2"}, models.DemoUserID); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	_, err := svc.Reserve(ctx, scheduleID, []string{"A2", "A3"}, models.DemoUserID)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for taken seat, got %v", err)
	}
	// The rejected attempt must roll back its decrement.
	if got := availableSeats(t, db, scheduleID); got != 8 {
		t.Fatalf("seats after rollback: got %d want 8", got)
	}
}

func TestReserveUnknownSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)

	_, err := svc.Reserve(context.Background(), 424242, []string{"A1"}, models.DemoUserID)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReserveCancelledSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	if _, err := db.Exec(`UPDATE schedules SET status = 'cancelled' WHERE id = ?`, scheduleID); err != nil {
		t.Fatalf("update schedule: %v", err)
	}

	_, err := svc.Reserve(context.Background(), scheduleID, []string{"A1"}, models.DemoUserID)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for cancelled schedule, got %v", err)
	}
}

func TestConcurrentReserveNoOversell(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	const capacity = 10
	const attempts = 30
	scheduleID := insertTrip(t, db, capacity)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seat := fmt.Sprintf("S%02d", i)
			_, errs[i] = svc.Reserve(context.Background(), scheduleID, []string{seat}, models.DemoUserID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case domain.IsConflict(err):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != capacity {
		t.Fatalf("winners: got %d want %d", won, capacity)
	}
	if got := availableSeats(t, db, scheduleID); got != 0 {
		t.Fatalf("seats left: got %d want 0", got)
	}
}

func TestReserveExhaustionKeepsCounterStable(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 5)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1", "A2"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if b.TotalAmount != 1160 {
		t.Fatalf("amount: %.2f", b.TotalAmount)
	}
	if got := availableSeats(t, db, scheduleID); got != 3 {
		t.Fatalf("seats: got %d want 3", got)
	}

	_, err = svc.Reserve(ctx, scheduleID, []string{"B1", "B2", "B3", "B4"}, models.DemoUserID)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := availableSeats(t, db, scheduleID); got != 3 {
		t.Fatalf("failed reserve moved the counter: %d", got)
	}
}

func TestCancelBeforePayKeepsPaymentPending(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	cancelled, err := svc.Cancel(ctx, b.ID, models.DemoUserID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Fatalf("status: %s", cancelled.Status)
	}
	// Nothing was paid, so nothing gets refunded.
	if cancelled.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("payment status: %s", cancelled.PaymentStatus)
	}
}

type failingGateway struct{}

func (failingGateway) Charge(context.Context, models.Booking, string) (string, error) {
	return "", domain.InternalError{Msg: "gateway declined"}
}

func TestPayConfirmsBookingAndIssuesTicket(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1", "A2"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	result, err := svc.Pay(ctx, b.ID, "gcash", models.DemoUserID)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if result.Booking.Status != models.BookingStatusConfirmed {
		t.Fatalf("status after pay: %s", result.Booking.Status)
	}
	if result.Booking.PaymentStatus != models.PaymentStatusCompleted {
		t.Fatalf("payment status after pay: %s", result.Booking.PaymentStatus)
	}
	if !strings.HasPrefix(result.PaymentReference, "PAY") {
		t.Fatalf("unexpected payment reference %q", result.PaymentReference)
	}
	if !strings.HasPrefix(result.QRCode, "data:image/png;base64,") {
		t.Fatalf("qr code not a png data url: %.40q", result.QRCode)
	}

	stored, err := svc.bookings().GetByID(b.ID)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if stored.QRCode != result.QRCode {
		t.Fatalf("qr code not persisted")
	}
}

func TestPayTwiceIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := svc.Pay(ctx, b.ID, "gcash", models.DemoUserID); err != nil {
		t.Fatalf("first pay: %v", err)
	}
	if _, err := svc.Pay(ctx, b.ID, "gcash", models.DemoUserID); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on second pay, got %v", err)
	}
}

func TestPayGatewayFailureLeavesBookingPending(t *testing.T) {
	db := newTestDB(t)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	svc := BookingService{DB: db, Gateway: failingGateway{}}
	b, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := svc.Pay(ctx, b.ID, "card", models.DemoUserID); !domain.IsInternal(err) {
		t.Fatalf("expected internal error from gateway, got %v", err)
	}

	stored, err := svc.bookings().GetByID(b.ID)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if stored.Status != models.BookingStatusPending {
		t.Fatalf("booking no longer pending after failed charge: %s", stored.Status)
	}

	// A retry with a working gateway succeeds.
	svc.Gateway = SimulatedGateway{Delay: time.Millisecond}
	if _, err := svc.Pay(ctx, b.ID, "card", models.DemoUserID); err != nil {
		t.Fatalf("retry pay: %v", err)
	}
}

func TestPayRequiresMethodAndOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := svc.Pay(ctx, b.ID, "  ", models.DemoUserID); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank method, got %v", err)
	}
	if _, err := svc.Pay(ctx, b.ID, "gcash", models.DemoUserID+1); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for foreign booking, got %v", err)
	}
}

func TestCancelRestoresSeatsAndIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1", "A2", "A3"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := availableSeats(t, db, scheduleID); got != 7 {
		t.Fatalf("seats after reserve: got %d want 7", got)
	}

	cancelled, err := svc.Cancel(ctx, b.ID, models.DemoUserID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Fatalf("status after cancel: %s", cancelled.Status)
	}
	if got := availableSeats(t, db, scheduleID); got != 10 {
		t.Fatalf("seats after cancel: got %d want 10", got)
	}

	if _, err := svc.Cancel(ctx, b.ID, models.DemoUserID); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on repeat cancel, got %v", err)
	}
	if got := availableSeats(t, db, scheduleID); got != 10 {
		t.Fatalf("repeat cancel changed the counter: %d", got)
	}

	// The released seat is bookable again.
	if _, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID); err != nil {
		t.Fatalf("rebook released seat: %v", err)
	}
}

func TestCancelPaidBookingRefunds(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if _, err := svc.Pay(ctx, b.ID, "gcash", models.DemoUserID); err != nil {
		t.Fatalf("pay: %v", err)
	}

	cancelled, err := svc.Cancel(ctx, b.ID, models.DemoUserID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.PaymentStatus != models.PaymentStatusRefunded {
		t.Fatalf("payment status after cancelling paid booking: %s", cancelled.PaymentStatus)
	}
}

func TestCancelExpiredReleasesOnlyStaleBookings(t *testing.T) {
	db := newTestDB(t)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	svc := BookingService{DB: db, Gateway: SimulatedGateway{Delay: time.Millisecond}, BookingTTL: 15 * time.Minute}

	stale, err := svc.Reserve(ctx, scheduleID, []string{"A1", "A2"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve stale: %v", err)
	}
	fresh, err := svc.Reserve(ctx, scheduleID, []string{"B1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve fresh: %v", err)
	}
	if _, err := db.Exec(`UPDATE bookings SET created_at = datetime('now', '-1 hour') WHERE id = ?`, stale.ID); err != nil {
		t.Fatalf("age booking: %v", err)
	}

	expired, err := svc.CancelExpired(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != stale.ID {
		t.Fatalf("unexpected sweep result: %+v", expired)
	}
	if got := availableSeats(t, db, scheduleID); got != 9 {
		t.Fatalf("seats after sweep: got %d want 9", got)
	}

	freshStored, err := svc.bookings().GetByID(fresh.ID)
	if err != nil {
		t.Fatalf("reload fresh: %v", err)
	}
	if freshStored.Status != models.BookingStatusPending {
		t.Fatalf("fresh booking swept: %s", freshStored.Status)
	}
}

func TestListAndGetAreScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	scheduleID := insertTrip(t, db, 10)
	ctx := context.Background()

	b, err := svc.Reserve(ctx, scheduleID, []string{"A1"}, models.DemoUserID)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	mine, err := svc.ListForUser(ctx, models.DemoUserID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != b.ID {
		t.Fatalf("unexpected list: %+v", mine)
	}
	if mine[0].Origin != "Manila" || mine[0].Destination != "Baguio" || mine[0].BusNumber != "ABC-001" {
		t.Fatalf("detail join wrong: %+v", mine[0])
	}

	other, err := svc.ListForUser(ctx, models.DemoUserID+1)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("foreign user sees bookings: %+v", other)
	}
	if _, err := svc.GetForUser(ctx, b.ID, models.DemoUserID+1); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for foreign get, got %v", err)
	}
}
