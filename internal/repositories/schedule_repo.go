package repositories

import (
	"database/sql"
	"errors"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

// executor is satisfied by both *sql.DB and *sql.Tx so inventory
// mutations can run inside the booking transaction.
type executor interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

type ScheduleRepo struct {
	DB *sql.DB
}

func (r ScheduleRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleDetailColumns = `
	s.id, s.route_id, s.bus_id, s.departure_time, s.arrival_time,
	s.departure_date, s.available_seats, s.status,
	r.origin, r.destination, r.fare, b.bus_number, b.capacity`

func scanScheduleDetail(row interface{ Scan(...any) error }) (models.ScheduleDetail, error) {
	var d models.ScheduleDetail
	err := row.Scan(
		&d.ID, &d.RouteID, &d.BusID, &d.DepartureTime, &d.ArrivalTime,
		&d.DepartureDate, &d.AvailableSeats, &d.Status,
		&d.Origin, &d.Destination, &d.Fare, &d.BusNumber, &d.Capacity,
	)
	return d, err
}

// Search returns bookable schedules matching the filters, ordered by
// departure date then time. Empty filters are not applied.
func (r ScheduleRepo) Search(origin, destination, date string) ([]models.ScheduleDetail, error) {
	query := `
		SELECT ` + scheduleDetailColumns + `
		FROM schedules s
		JOIN routes r ON s.route_id = r.id
		JOIN buses b ON s.bus_id = b.id
		WHERE s.status = ? AND s.available_seats > 0`
	args := []any{models.ScheduleStatusScheduled}

	if origin != "" && destination != "" {
		query += ` AND r.origin = ? AND r.destination = ?`
		args = append(args, origin, destination)
	}
	if date != "" {
		query += ` AND s.departure_date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY s.departure_date, s.departure_time`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query schedules", Err: err}
	}
	defer rows.Close()

	out := []models.ScheduleDetail{}
	for rows.Next() {
		d, err := scanScheduleDetail(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to scan schedule", Err: err}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDetailByID fetches one schedule with its route fare and bus.
func (r ScheduleRepo) GetDetailByID(id int64) (models.ScheduleDetail, error) {
	return r.detailByID(r.db(), id)
}

func (r ScheduleRepo) detailByID(ex executor, id int64) (models.ScheduleDetail, error) {
	row := ex.QueryRow(`
		SELECT `+scheduleDetailColumns+`
		FROM schedules s
		JOIN routes r ON s.route_id = r.id
		JOIN buses b ON s.bus_id = b.id
		WHERE s.id = ?`, id)
	d, err := scanScheduleDetail(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return d, domain.NotFoundError{Resource: "schedule"}
		}
		return d, domain.InternalError{Msg: "failed to query schedule", Err: err}
	}
	return d, nil
}

// DecrementSeats atomically checks and reduces the seat counter. The
// guard in the WHERE clause is what prevents overselling; callers run
// it inside the reserve transaction.
func (r ScheduleRepo) DecrementSeats(ex executor, scheduleID int64, count int) error {
	res, err := ex.Exec(`
		UPDATE schedules
		SET available_seats = available_seats - ?
		WHERE id = ? AND status = ? AND available_seats >= ?`,
		count, scheduleID, models.ScheduleStatusScheduled, count)
	if err != nil {
		return domain.InternalError{Msg: "failed to decrement seats", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "failed to read rows affected", Err: err}
	}
	if affected > 0 {
		return nil
	}

	// Classify the rejection: missing schedule, wrong status, or not
	// enough seats left.
	var status string
	var available int
	err = ex.QueryRow(`SELECT status, available_seats FROM schedules WHERE id = ?`, scheduleID).
		Scan(&status, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "schedule"}
	}
	if err != nil {
		return domain.InternalError{Msg: "failed to inspect schedule", Err: err}
	}
	if status != models.ScheduleStatusScheduled {
		return domain.ConflictError{Resource: "schedule", Msg: "no longer open for booking"}
	}
	return domain.ConflictError{Resource: "schedule", Msg: "not enough available seats"}
}

// RestoreSeats returns seats to the pool, clamped at bus capacity.
func (r ScheduleRepo) RestoreSeats(ex executor, scheduleID int64, count int) error {
	if _, err := ex.Exec(`
		UPDATE schedules
		SET available_seats = available_seats + ?
		WHERE id = ?`, count, scheduleID); err != nil {
		return domain.InternalError{Msg: "failed to restore seats", Err: err}
	}
	if _, err := ex.Exec(`
		UPDATE schedules
		SET available_seats = (SELECT capacity FROM buses WHERE buses.id = schedules.bus_id)
		WHERE id = ?
		  AND available_seats > (SELECT capacity FROM buses WHERE buses.id = schedules.bus_id)`,
		scheduleID); err != nil {
		return domain.InternalError{Msg: "failed to clamp seats", Err: err}
	}
	return nil
}
