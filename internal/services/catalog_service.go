package services

import (
	"database/sql"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain/models"
	"abcbus/internal/repositories"
)

// CatalogService serves the read-only reference data.
type CatalogService struct {
	RouteRepo repositories.RouteRepo
	BusRepo   repositories.BusRepo
	DB        *sql.DB
}

func (s CatalogService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CatalogService) ListRoutes() ([]models.Route, error) {
	r := s.RouteRepo
	if r.DB == nil {
		r = repositories.RouteRepo{DB: s.db()}
	}
	return r.List()
}

func (s CatalogService) GetRoute(id int64) (models.Route, error) {
	r := s.RouteRepo
	if r.DB == nil {
		r = repositories.RouteRepo{DB: s.db()}
	}
	return r.GetByID(id)
}

// BusLocation is the tracking read for a single bus.
type BusLocation struct {
	BusNumber  string   `json:"bus_number"`
	CurrentLat *float64 `json:"current_lat"`
	CurrentLng *float64 `json:"current_lng"`
	Status     string   `json:"status"`
}

func (s CatalogService) GetBusLocation(id int64) (BusLocation, error) {
	r := s.BusRepo
	if r.DB == nil {
		r = repositories.BusRepo{DB: s.db()}
	}
	bus, err := r.GetByID(id)
	if err != nil {
		return BusLocation{}, err
	}
	return BusLocation{
		BusNumber:  bus.BusNumber,
		CurrentLat: bus.CurrentLat,
		CurrentLng: bus.CurrentLng,
		Status:     bus.Status,
	}, nil
}
