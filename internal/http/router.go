package api

import (
	"log"
	stdhttp "net/http"

	intconfig "abcbus/internal/config"
	"abcbus/internal/http/handlers"
	"abcbus/internal/http/middleware"
	"abcbus/internal/tracker"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, trk *tracker.Tracker) *gin.Engine {
	h := handlers.New(env, trk)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		// Catalog
		api.GET("/routes", h.Routes)
		api.GET("/routes/:id", h.RouteByID)
		api.GET("/schedules", h.Schedules)

		// Tracking
		api.GET("/buses/:id/location", h.BusLocation)
		api.GET("/ws/track/:id", h.TrackBus)

		// Ticket validation (scanner facing, no auth)
		api.POST("/tickets/validate", h.ValidateTicket)

		authed := api.Group("")
		authed.Use(middleware.Auth([]byte(env.JWTSecret), env.DemoMode))

		bookings := authed.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.BookingETicket)

		authed.POST("/payments/process", h.ProcessPayment)
	}

	return r
}
