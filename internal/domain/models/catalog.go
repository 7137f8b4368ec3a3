package models

// Bus operational statuses.
const (
	BusStatusActive      = "active"
	BusStatusMaintenance = "maintenance"
	BusStatusInactive    = "inactive"
)

// Route is immutable reference data seeded at startup.
type Route struct {
	ID          int64   `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKM  int     `json:"distance"`
	DurationMin int     `json:"duration"`
	Fare        float64 `json:"fare"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type Bus struct {
	ID         int64    `json:"id"`
	BusNumber  string   `json:"bus_number"`
	Capacity   int      `json:"capacity"`
	RouteID    *int64   `json:"route_id,omitempty"`
	CurrentLat *float64 `json:"current_lat,omitempty"`
	CurrentLng *float64 `json:"current_lng,omitempty"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"created_at,omitempty"`
}
