package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type processPaymentRequest struct {
	BookingID     int64  `json:"bookingId"`
	PaymentMethod string `json:"paymentMethod"`
}

// ProcessPayment charges a pending booking and returns the boarding
// QR on success.
func (h *Handler) ProcessPayment(c *gin.Context) {
	var req processPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.BookingID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "bookingId is required", nil)
		return
	}

	result, err := h.bookingService(c).Pay(c.Request.Context(), req.BookingID, req.PaymentMethod, h.userID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Payment successful",
		"paymentReference": result.PaymentReference,
		"qrCode":           result.QRCode,
	})
}
