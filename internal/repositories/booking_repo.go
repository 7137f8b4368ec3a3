package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

type BookingRepo struct {
	DB        *sql.DB
	Schedules ScheduleRepo
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepo) schedules() ScheduleRepo {
	if r.Schedules.DB != nil {
		return r.Schedules
	}
	return ScheduleRepo{DB: r.db()}
}

const bookingColumns = `
	id, booking_reference, user_id, schedule_id, seat_numbers,
	total_amount, payment_status, COALESCE(payment_method, ''),
	COALESCE(payment_reference, ''), COALESCE(qr_code, ''), status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var seatJSON string
	err := row.Scan(
		&b.ID, &b.BookingReference, &b.UserID, &b.ScheduleID, &seatJSON,
		&b.TotalAmount, &b.PaymentStatus, &b.PaymentMethod,
		&b.PaymentReference, &b.QRCode, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal([]byte(seatJSON), &b.SeatNumbers); err != nil {
		b.SeatNumbers = []string{}
	}
	return b, nil
}

// CreateReservation performs the reserve unit of work: guarded seat
// decrement, booking insert, and per-seat rows, all in one
// transaction. Any failure rolls the whole reservation back so the
// counter is never left decremented without its booking.
func (r BookingRepo) CreateReservation(b *models.Booking) error {
	seatJSON, err := json.Marshal(b.SeatNumbers)
	if err != nil {
		return domain.InternalError{Msg: "failed to encode seats", Err: err}
	}

	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := r.schedules().DecrementSeats(tx, b.ScheduleID, len(b.SeatNumbers)); err != nil {
		return err
	}

	// Reject seat labels already held by a live booking on this
	// schedule. The partial unique index backstops this check.
	for _, seat := range b.SeatNumbers {
		var taken int
		if err := tx.QueryRow(`
			SELECT COUNT(*) FROM booking_seats
			WHERE schedule_id = ? AND seat_code = ? AND released = 0`,
			b.ScheduleID, seat).Scan(&taken); err != nil {
			return domain.InternalError{Msg: "failed to check seat", Err: err}
		}
		if taken > 0 {
			return domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("seat %s is already taken", seat)}
		}
	}

	res, err := tx.Exec(`
		INSERT INTO bookings (booking_reference, user_id, schedule_id, seat_numbers,
			total_amount, payment_status, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.BookingReference, b.UserID, b.ScheduleID, string(seatJSON),
		b.TotalAmount, models.PaymentStatusPending, models.BookingStatusPending)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError{Resource: "booking_reference", Msg: "reference collision"}
		}
		return domain.InternalError{Msg: "failed to insert booking", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Msg: "failed to read booking id", Err: err}
	}

	for _, seat := range b.SeatNumbers {
		if _, err := tx.Exec(`
			INSERT INTO booking_seats (booking_id, schedule_id, seat_code)
			VALUES (?, ?, ?)`, id, b.ScheduleID, seat); err != nil {
			if isUniqueViolation(err) {
				return domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("seat %s is already taken", seat)}
			}
			return domain.InternalError{Msg: "failed to insert booking seat", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "failed to commit reservation", Err: err}
	}

	b.ID = id
	b.PaymentStatus = models.PaymentStatusPending
	b.Status = models.BookingStatusPending
	return nil
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "booking"}
		}
		return b, domain.InternalError{Msg: "failed to query booking", Err: err}
	}
	return b, nil
}

// GetByReference resolves a booking from a scanned ticket.
func (r BookingRepo) GetByReference(reference string) (models.Booking, error) {
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE booking_reference = ?`, reference)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "booking"}
		}
		return b, domain.InternalError{Msg: "failed to query booking", Err: err}
	}
	return b, nil
}

const bookingDetailQuery = `
	SELECT b.id, b.booking_reference, b.user_id, b.schedule_id, b.seat_numbers,
		b.total_amount, b.payment_status, COALESCE(b.payment_method, ''),
		COALESCE(b.payment_reference, ''), COALESCE(b.qr_code, ''), b.status, b.created_at,
		s.departure_date, s.departure_time, s.arrival_time,
		r.origin, r.destination, bus.bus_number
	FROM bookings b
	JOIN schedules s ON b.schedule_id = s.id
	JOIN routes r ON s.route_id = r.id
	JOIN buses bus ON s.bus_id = bus.id`

func scanBookingDetail(row interface{ Scan(...any) error }) (models.BookingDetail, error) {
	var d models.BookingDetail
	var seatJSON string
	err := row.Scan(
		&d.ID, &d.BookingReference, &d.UserID, &d.ScheduleID, &seatJSON,
		&d.TotalAmount, &d.PaymentStatus, &d.PaymentMethod,
		&d.PaymentReference, &d.QRCode, &d.Status, &d.CreatedAt,
		&d.DepartureDate, &d.DepartureTime, &d.ArrivalTime,
		&d.Origin, &d.Destination, &d.BusNumber,
	)
	if err != nil {
		return d, err
	}
	if err := json.Unmarshal([]byte(seatJSON), &d.SeatNumbers); err != nil {
		d.SeatNumbers = []string{}
	}
	return d, nil
}

func (r BookingRepo) GetDetailByID(id int64) (models.BookingDetail, error) {
	row := r.db().QueryRow(bookingDetailQuery+` WHERE b.id = ?`, id)
	d, err := scanBookingDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, domain.NotFoundError{Resource: "booking"}
		}
		return d, domain.InternalError{Msg: "failed to query booking", Err: err}
	}
	return d, nil
}

// ListByUser returns the user's bookings, most recent departure first.
func (r BookingRepo) ListByUser(userID int64) ([]models.BookingDetail, error) {
	rows, err := r.db().Query(bookingDetailQuery+`
		WHERE b.user_id = ?
		ORDER BY s.departure_date DESC, s.departure_time DESC`, userID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query bookings", Err: err}
	}
	defer rows.Close()

	out := []models.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to scan booking", Err: err}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// MarkPaid flips a pending booking to confirmed/completed in one
// guarded update; a zero row count means the booking was missing or
// no longer pending.
func (r BookingRepo) MarkPaid(id int64, method, paymentRef string) error {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET payment_status = ?, payment_method = ?, payment_reference = ?, status = ?
		WHERE id = ? AND status = ?`,
		models.PaymentStatusCompleted, method, paymentRef,
		models.BookingStatusConfirmed, id, models.BookingStatusPending)
	if err != nil {
		return domain.InternalError{Msg: "failed to update payment", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "failed to read rows affected", Err: err}
	}
	if affected > 0 {
		return nil
	}

	var status string
	err = r.db().QueryRow(`SELECT status FROM bookings WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return domain.InternalError{Msg: "failed to inspect booking", Err: err}
	}
	return domain.ConflictError{Resource: "booking", Msg: "already paid"}
}

// SaveQRCode stores the issued ticket code on the booking row.
func (r BookingRepo) SaveQRCode(id int64, qr string) error {
	if _, err := r.db().Exec(`UPDATE bookings SET qr_code = ? WHERE id = ?`, qr, id); err != nil {
		return domain.InternalError{Msg: "failed to save qr code", Err: err}
	}
	return nil
}

// Cancel transitions a booking to cancelled, releases its seat labels
// and restores the schedule counter, all in one transaction. Paid
// bookings get payment_status refunded.
func (r BookingRepo) Cancel(id int64) (models.Booking, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "booking"}
		}
		return b, domain.InternalError{Msg: "failed to query booking", Err: err}
	}
	if b.Status == models.BookingStatusCancelled {
		return b, domain.ConflictError{Resource: "booking", Msg: "already cancelled"}
	}

	if err := r.cancelTx(tx, &b); err != nil {
		return b, err
	}
	if err := tx.Commit(); err != nil {
		return b, domain.InternalError{Msg: "failed to commit cancellation", Err: err}
	}
	return b, nil
}

func (r BookingRepo) cancelTx(tx *sql.Tx, b *models.Booking) error {
	paymentStatus := b.PaymentStatus
	if paymentStatus == models.PaymentStatusCompleted {
		paymentStatus = models.PaymentStatusRefunded
	}

	if _, err := tx.Exec(`
		UPDATE bookings SET status = ?, payment_status = ? WHERE id = ?`,
		models.BookingStatusCancelled, paymentStatus, b.ID); err != nil {
		return domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}
	if _, err := tx.Exec(`
		UPDATE booking_seats SET released = 1 WHERE booking_id = ?`, b.ID); err != nil {
		return domain.InternalError{Msg: "failed to release seats", Err: err}
	}
	if err := r.schedules().RestoreSeats(tx, b.ScheduleID, len(b.SeatNumbers)); err != nil {
		return err
	}

	b.Status = models.BookingStatusCancelled
	b.PaymentStatus = paymentStatus
	return nil
}

// CancelExpired cancels pending bookings created before the cutoff
// and releases their held seats. Used by the expiry sweeper.
func (r BookingRepo) CancelExpired(ttl time.Duration) ([]models.Booking, error) {
	cutoff := time.Now().UTC().Add(-ttl).Format("2006-01-02 15:04:05")

	tx, err := r.db().Begin()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = ? AND created_at <= ?`,
		models.BookingStatusPending, cutoff)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query expired bookings", Err: err}
	}
	expired := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			rows.Close()
			return nil, domain.InternalError{Msg: "failed to scan booking", Err: err}
		}
		expired = append(expired, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, domain.InternalError{Msg: "failed to iterate bookings", Err: err}
	}
	rows.Close()

	for i := range expired {
		if err := r.cancelTx(tx, &expired[i]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Msg: "failed to commit expiry sweep", Err: err}
	}
	return expired, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
