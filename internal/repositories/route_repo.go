package repositories

import (
	"database/sql"
	"errors"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
)

type RouteRepo struct {
	DB *sql.DB
}

func (r RouteRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns all routes ordered by origin/destination.
func (r RouteRepo) List() ([]models.Route, error) {
	rows, err := r.db().Query(`
		SELECT id, origin, destination, distance, duration, fare, created_at
		FROM routes
		ORDER BY origin, destination`)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to query routes", Err: err}
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.DurationMin, &rt.Fare, &rt.CreatedAt); err != nil {
			return nil, domain.InternalError{Msg: "failed to scan route", Err: err}
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepo) GetByID(id int64) (models.Route, error) {
	var rt models.Route
	err := r.db().QueryRow(`
		SELECT id, origin, destination, distance, duration, fare, created_at
		FROM routes
		WHERE id = ?`, id).
		Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKM, &rt.DurationMin, &rt.Fare, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rt, domain.NotFoundError{Resource: "route"}
		}
		return rt, domain.InternalError{Msg: "failed to query route", Err: err}
	}
	return rt, nil
}
