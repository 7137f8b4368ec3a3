package handlers

import (
	"io"
	"net/http"

	"abcbus/internal/domain/models"
	"abcbus/internal/repositories"
	"abcbus/internal/services"

	"github.com/gin-gonic/gin"
)

// ValidateTicket applies the boarding-scanner contract to a scanned
// payload posted as the raw request body.
func (h *Handler) ValidateTicket(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		respondError(c, http.StatusBadRequest, "invalid_body", "empty or unreadable payload", nil)
		return
	}

	svc := services.TicketService{RequestID: reqID(c)}
	repo := repositories.BookingRepo{}
	payload, err := svc.Validate(raw, func(reference string) (models.Booking, error) {
		return repo.GetByReference(reference)
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":  true,
		"ticket": payload,
	})
}
