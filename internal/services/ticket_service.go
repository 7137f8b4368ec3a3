package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
	"abcbus/internal/utils"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	companyName        = "ABC Bus Lines"
	ticketInstructions = "Present this QR code to the conductor for boarding"
)

// TicketService issues and validates boarding tickets. The payload
// field set is the wire contract with the boarding scanner.
type TicketService struct {
	UserRepo  interface{ GetByID(int64) (models.User, error) }
	RequestID string
}

// Issue builds the ticket payload for a confirmed booking and encodes
// it as a PNG data URL.
func (s TicketService) Issue(detail models.BookingDetail) (models.TicketPayload, string, error) {
	passenger := "Demo User"
	if s.UserRepo != nil {
		if u, err := s.UserRepo.GetByID(detail.UserID); err == nil {
			passenger = u.Username
		}
	}

	payload := models.TicketPayload{
		Company:          companyName,
		BookingReference: detail.BookingReference,
		BusNumber:        detail.BusNumber,
		Route:            fmt.Sprintf("%s → %s", detail.Origin, detail.Destination),
		Departure:        fmt.Sprintf("%s %s", detail.DepartureDate, detail.DepartureTime),
		Seats:            detail.SeatNumbers,
		Amount:           utils.FormatPeso(detail.TotalAmount),
		Passenger:        passenger,
		Status:           "CONFIRMED",
		ValidUntil:       detail.DepartureDate,
		TicketID:         newTicketID(detail.BookingReference),
		Instructions:     ticketInstructions,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return payload, "", domain.InternalError{Msg: "failed to encode ticket payload", Err: err}
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, 256)
	if err != nil {
		return payload, "", domain.InternalError{Msg: "failed to encode qr image", Err: err}
	}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	utils.LogEvent(s.RequestID, "ticket", "issue",
		fmt.Sprintf("reference=%s ticket_id=%s", payload.BookingReference, payload.TicketID))
	return payload, dataURL, nil
}

// newTicketID is unique per issuance, so a re-issued ticket is
// distinguishable from the one it replaces.
func newTicketID(reference string) string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("TKT-%s-%s", reference, suffix)
}

// BookingLookup resolves a booking by its reference during scanning.
type BookingLookup func(reference string) (models.Booking, error)

// Validate applies the boarding-scanner contract: the payload must
// parse, reference a confirmed booking, and not be past its validity
// date.
func (s TicketService) Validate(raw []byte, lookup BookingLookup) (models.TicketPayload, error) {
	var payload models.TicketPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, domain.ValidationError{Field: "ticket", Msg: "not a valid ticket payload"}
	}
	if payload.BookingReference == "" || payload.Company != companyName {
		return payload, domain.ValidationError{Field: "ticket", Msg: "not a valid ticket payload"}
	}

	booking, err := lookup(payload.BookingReference)
	if err != nil {
		return payload, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return payload, domain.ConflictError{Resource: "ticket", Msg: "booking is not confirmed"}
	}

	validUntil, err := utils.ParseDate(payload.ValidUntil)
	if err != nil {
		return payload, domain.ValidationError{Field: "validUntil", Msg: "malformed validity date"}
	}
	if validUntil.AddDate(0, 0, 1).Before(time.Now()) {
		return payload, domain.ConflictError{Resource: "ticket", Msg: "ticket validity has expired"}
	}

	return payload, nil
}
