package models

// Booking statuses. Cancelled is terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

type Booking struct {
	ID               int64    `json:"id"`
	BookingReference string   `json:"booking_reference"`
	UserID           int64    `json:"user_id"`
	ScheduleID       int64    `json:"schedule_id"`
	SeatNumbers      []string `json:"seat_numbers"`
	TotalAmount      float64  `json:"total_amount"`
	PaymentStatus    string   `json:"payment_status"`
	PaymentMethod    string   `json:"payment_method,omitempty"`
	PaymentReference string   `json:"payment_reference,omitempty"`
	QRCode           string   `json:"qr_code,omitempty"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"created_at,omitempty"`
}

// BookingDetail joins the schedule, route and bus fields the list
// endpoint returns alongside each booking.
type BookingDetail struct {
	Booking
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	BusNumber     string `json:"bus_number"`
}
