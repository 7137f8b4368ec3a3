package models

// TicketPayload is the structure encoded into the boarding QR code.
// Field names are the wire contract with the boarding scanner; do not
// rename them.
type TicketPayload struct {
	Company          string   `json:"company"`
	BookingReference string   `json:"bookingReference"`
	BusNumber        string   `json:"busNumber"`
	Route            string   `json:"route"`
	Departure        string   `json:"departure"`
	Seats            []string `json:"seats"`
	Amount           string   `json:"amount"`
	Passenger        string   `json:"passenger"`
	Status           string   `json:"status"`
	ValidUntil       string   `json:"validUntil"`
	TicketID         string   `json:"ticketId"`
	Instructions     string   `json:"instructions"`
}
