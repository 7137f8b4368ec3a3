package handlers

import (
	"net/http"

	"abcbus/internal/services"

	"github.com/gin-gonic/gin"
)

// Routes lists the catalog.
func (h *Handler) Routes(c *gin.Context) {
	svc := services.CatalogService{}
	routes, err := svc.ListRoutes()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// RouteByID returns a single catalog route.
func (h *Handler) RouteByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	svc := services.CatalogService{}
	route, err := svc.GetRoute(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// Schedules answers GET /api/schedules?origin&destination&date.
func (h *Handler) Schedules(c *gin.Context) {
	svc := services.ScheduleService{
		DemoFallback: h.Env.DemoFallback,
		RequestID:    reqID(c),
	}
	results, err := svc.Search(c.Query("origin"), c.Query("destination"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
