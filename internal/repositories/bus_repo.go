package repositories

import (
	"database/sql"
	"errors"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

type BusRepo struct {
	DB *sql.DB
}

func (r BusRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BusRepo) GetByID(id int64) (models.Bus, error) {
	var b models.Bus
	err := r.db().QueryRow(`
		SELECT id, bus_number, capacity, route_id, current_lat, current_lng, status
		FROM buses
		WHERE id = ?`, id).
		Scan(&b.ID, &b.BusNumber, &b.Capacity, &b.RouteID, &b.CurrentLat, &b.CurrentLng, &b.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.NotFoundError{Resource: "bus"}
		}
		return b, domain.InternalError{Msg: "failed to query bus", Err: err}
	}
	return b, nil
}

// ListIDs returns ids of all buses; the tracker walks this set.
func (r BusRepo) ListIDs() ([]int64, error) {
	rows, err := r.db().Query(`SELECT id FROM buses ORDER BY id`)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query buses", Err: err}
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan bus id", Err: err}
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdatePosition persists the simulated GPS fix for a bus.
func (r BusRepo) UpdatePosition(id int64, lat, lng float64) error {
	_, err := r.db().Exec(`
		UPDATE buses SET current_lat = ?, current_lng = ?, status = ?
		WHERE id = ?`, lat, lng, models.BusStatusActive, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to update bus position", Err: err}
	}
	return nil
}
