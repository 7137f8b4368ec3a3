package models

// Schedule statuses.
const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusCancelled = "cancelled"
	ScheduleStatusDeparted  = "departed"
)

// Schedule is one concrete departure of a route on a date, owning its
// seat inventory. Invariant: 0 <= AvailableSeats <= bus capacity.
type Schedule struct {
	ID             int64  `json:"id"`
	RouteID        int64  `json:"route_id"`
	BusID          int64  `json:"bus_id"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	DepartureDate  string `json:"departure_date"`
	AvailableSeats int    `json:"available_seats"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// ScheduleDetail is the search result row joined with route and bus
// fields the way the booking UI consumes it.
type ScheduleDetail struct {
	Schedule
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Fare        float64 `json:"fare"`
	BusNumber   string  `json:"bus_number"`
	Capacity    int     `json:"capacity"`
}
