package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
	"abcbus/internal/repositories"
	"abcbus/internal/utils"
)

// BookingService drives the reserve -> pay -> ticket state machine.
type BookingService struct {
	BookingRepo  repositories.BookingRepo
	ScheduleRepo repositories.ScheduleRepo
	UserRepo     repositories.UserRepo
	Tickets      TicketService
	Gateway      PaymentGateway
	Refs         RefGenerator
	MaxSeats     int
	BookingTTL   time.Duration
	DB           *sql.DB
	RequestID    string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) schedules() repositories.ScheduleRepo {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepo{DB: s.db()}
}

func (s BookingService) gateway() PaymentGateway {
	if s.Gateway != nil {
		return s.Gateway
	}
	return SimulatedGateway{}
}

func (s BookingService) refs() RefGenerator {
	if s.Refs != nil {
		return s.Refs
	}
	return defaultRefs
}

var defaultRefs = &SequenceRefGenerator{}

func (s BookingService) maxSeats() int {
	if s.MaxSeats > 0 {
		return s.MaxSeats
	}
	return 4
}

// PaymentResult carries what the payment endpoint returns.
type PaymentResult struct {
	Booking          models.Booking
	PaymentReference string
	QRCode           string
}

// Reserve holds seats on a schedule and creates a pending booking.
// The seat decrement and the booking insert commit together or not at
// all, so concurrent reservations cannot oversell the schedule.
func (s BookingService) Reserve(ctx context.Context, scheduleID int64, seatLabels []string, userID int64) (models.Booking, error) {
	seats, err := s.normalizeSeats(seatLabels)
	if err != nil {
		return models.Booking{}, err
	}

	detail, err := s.schedules().GetDetailByID(scheduleID)
	if err != nil {
		return models.Booking{}, err
	}
	if detail.Status != models.ScheduleStatusScheduled {
		return models.Booking{}, domain.ConflictError{Resource: "schedule", Msg: "no longer open for booking"}
	}

	booking := models.Booking{
		UserID:      userID,
		ScheduleID:  scheduleID,
		SeatNumbers: seats,
		TotalAmount: detail.Fare * float64(len(seats)),
	}

	// A reference collision is vanishingly rare but recoverable:
	// regenerate and retry the whole transaction.
	for attempt := 0; attempt < 3; attempt++ {
		booking.BookingReference = s.refs().NewReference()
		err = s.bookings().CreateReservation(&booking)
		if err == nil {
			break
		}
		var conflict domain.ConflictError
		if !errors.As(err, &conflict) || conflict.Resource != "booking_reference" {
			return models.Booking{}, err
		}
	}
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "reserve",
		fmt.Sprintf("booking_id=%d reference=%s schedule_id=%d seats=%d amount=%.2f",
			booking.ID, booking.BookingReference, scheduleID, len(seats), booking.TotalAmount))
	return booking, nil
}

func (s BookingService) normalizeSeats(labels []string) ([]string, error) {
	if len(labels) == 0 {
		return nil, domain.ValidationError{Field: "seat_numbers", Msg: "at least one seat is required"}
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		seat := strings.ToUpper(strings.TrimSpace(l))
		if seat == "" {
			return nil, domain.ValidationError{Field: "seat_numbers", Msg: "seat labels must not be blank"}
		}
		if seen[seat] {
			return nil, domain.ValidationError{Field: "seat_numbers", Msg: fmt.Sprintf("duplicate seat %s", seat)}
		}
		seen[seat] = true
		out = append(out, seat)
	}
	if len(out) > s.maxSeats() {
		return nil, domain.ValidationError{Field: "seat_numbers",
			Msg: fmt.Sprintf("at most %d seats per booking", s.maxSeats())}
	}
	return out, nil
}

// Pay charges a pending booking and, on success, confirms it and
// issues the boarding QR. Gateway failure or timeout leaves the
// booking pending and retryable.
func (s BookingService) Pay(ctx context.Context, bookingID int64, method string, userID int64) (PaymentResult, error) {
	if strings.TrimSpace(method) == "" {
		return PaymentResult{}, domain.ValidationError{Field: "payment_method", Msg: "payment method is required"}
	}

	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return PaymentResult{}, err
	}
	if booking.UserID != userID {
		return PaymentResult{}, domain.NotFoundError{Resource: "booking"}
	}
	if booking.Status != models.BookingStatusPending {
		return PaymentResult{}, domain.ConflictError{Resource: "booking", Msg: "already paid"}
	}

	paymentRef, err := s.gateway().Charge(ctx, booking, method)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "pay_failed",
			fmt.Sprintf("booking_id=%d err=%v", bookingID, err))
		return PaymentResult{}, err
	}

	// The guarded update closes the race between two concurrent pay
	// calls: only one flips pending -> confirmed.
	if err := s.bookings().MarkPaid(bookingID, method, paymentRef); err != nil {
		return PaymentResult{}, err
	}

	result := PaymentResult{PaymentReference: paymentRef}

	detail, err := s.bookings().GetDetailByID(bookingID)
	if err != nil {
		return PaymentResult{}, err
	}
	result.Booking = detail.Booking

	// Ticket encoding failure does not undo a completed payment; the
	// response just carries an empty code.
	if _, dataURL, err := s.Tickets.Issue(detail); err != nil {
		utils.LogEvent(s.RequestID, "booking", "ticket_issue_failed",
			fmt.Sprintf("booking_id=%d err=%v", bookingID, err))
	} else {
		result.QRCode = dataURL
		result.Booking.QRCode = dataURL
		if err := s.bookings().SaveQRCode(bookingID, dataURL); err != nil {
			utils.LogEvent(s.RequestID, "booking", "ticket_save_failed",
				fmt.Sprintf("booking_id=%d err=%v", bookingID, err))
		}
	}

	utils.LogEvent(s.RequestID, "booking", "pay",
		fmt.Sprintf("booking_id=%d method=%s payment_reference=%s", bookingID, method, paymentRef))
	return result, nil
}

// Cancel transitions the booking to cancelled and returns the held
// seats to the schedule pool. Paid bookings are marked refunded.
func (s BookingService) Cancel(ctx context.Context, bookingID, userID int64) (models.Booking, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != userID {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}

	cancelled, err := s.bookings().Cancel(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("booking_id=%d payment_status=%s", bookingID, cancelled.PaymentStatus))
	return cancelled, nil
}

// ListForUser returns the user's bookings, most recent first.
func (s BookingService) ListForUser(ctx context.Context, userID int64) ([]models.BookingDetail, error) {
	return s.bookings().ListByUser(userID)
}

// GetForUser fetches one booking scoped to its owner.
func (s BookingService) GetForUser(ctx context.Context, bookingID, userID int64) (models.BookingDetail, error) {
	detail, err := s.bookings().GetDetailByID(bookingID)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if detail.UserID != userID {
		return models.BookingDetail{}, domain.NotFoundError{Resource: "booking"}
	}
	return detail, nil
}

// CancelExpired releases pending bookings older than the TTL. The
// sweeper calls this on an interval.
func (s BookingService) CancelExpired(ctx context.Context) ([]models.Booking, error) {
	ttl := s.BookingTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	expired, err := s.bookings().CancelExpired(ttl)
	if err != nil {
		return nil, err
	}
	for _, b := range expired {
		utils.LogEvent(s.RequestID, "booking", "expired",
			fmt.Sprintf("booking_id=%d reference=%s seats=%d", b.ID, b.BookingReference, len(b.SeatNumbers)))
	}
	return expired, nil
}
