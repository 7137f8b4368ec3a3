package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "abcbus/internal/config"
	"abcbus/internal/domain"
	"abcbus/internal/domain/models"
	"abcbus/internal/repositories"
	"abcbus/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable e-ticket for a confirmed booking.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	UserRepo    repositories.UserRepo
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s DocsService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

// GenerateETicket returns the PDF bytes and a download filename.
// Only confirmed bookings have a ticket to print.
func (s DocsService) GenerateETicket(bookingID, userID int64) ([]byte, string, error) {
	detail, err := s.bookings().GetDetailByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if detail.UserID != userID {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	if detail.Status != models.BookingStatusConfirmed {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "not confirmed"}
	}

	passenger := "Demo User"
	if u, err := s.users().GetByID(detail.UserID); err == nil {
		passenger = u.Username
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(detail, passenger)
}

func buildETicketPDF(d models.BookingDetail, passenger string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ABC BUS LINES E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger      : %s", safe(passenger)),
		fmt.Sprintf("Reference      : %s", safe(d.BookingReference)),
		fmt.Sprintf("Route          : %s -> %s", safe(d.Origin), safe(d.Destination)),
		fmt.Sprintf("Departure      : %s %s", safe(d.DepartureDate), safe(d.DepartureTime)),
		fmt.Sprintf("Arrival        : %s", safe(d.ArrivalTime)),
		fmt.Sprintf("Bus            : %s", safe(d.BusNumber)),
		fmt.Sprintf("Seats          : %s", safe(strings.Join(d.SeatNumbers, ", "))),
		fmt.Sprintf("Amount         : PHP %s", utils.FormatMoney(d.TotalAmount)),
		fmt.Sprintf("Payment        : %s (%s)", safe(d.PaymentMethod), safe(d.PaymentReference)),
		fmt.Sprintf("Status         : %s", strings.ToUpper(d.Status)),
		fmt.Sprintf("Issued         : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this e-ticket or the QR code to the conductor for boarding. Valid only on the departure date shown.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render e-ticket", Err: err}
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", d.BookingReference)
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
