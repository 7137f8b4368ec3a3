package handlers

import (
	"net/http"

	"abcbus/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	ScheduleID  int64    `json:"scheduleId"`
	SeatNumbers []string `json:"seatNumbers"`
}

func (h *Handler) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		MaxSeats:   h.Env.MaxSeatsPerBooking,
		BookingTTL: h.Env.BookingTTL,
		RequestID:  reqID(c),
	}
}

// CreateBooking reserves seats and opens a pending booking.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.ScheduleID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "scheduleId is required", nil)
		return
	}

	booking, err := h.bookingService(c).Reserve(c.Request.Context(), req.ScheduleID, req.SeatNumbers, h.userID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingId":        booking.ID,
		"bookingReference": booking.BookingReference,
		"totalAmount":      booking.TotalAmount,
		"currency":         "PHP",
		"message":          "Booking created. Please proceed to payment.",
	})
}

// ListBookings returns the caller's bookings.
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.bookingService(c).ListForUser(c.Request.Context(), h.userID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking returns one booking owned by the caller.
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.bookingService(c).GetForUser(c.Request.Context(), id, h.userID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CancelBooking cancels a booking and releases its seats.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService(c).Cancel(c.Request.Context(), id, h.userID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// BookingETicket streams the PDF e-ticket for a confirmed booking.
func (h *Handler) BookingETicket(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: reqID(c)}
	pdf, filename, err := svc.GenerateETicket(id, h.userID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
