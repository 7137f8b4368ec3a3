package handlers

import (
	"net/http"
	"time"

	"abcbus/internal/services"
	"abcbus/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var trackUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the SPA origin; CORS already gates
	// the REST surface so the upgrade accepts any origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// BusLocation returns the last persisted fix for one bus.
func (h *Handler) BusLocation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	svc := services.CatalogService{}
	loc, err := svc.GetBusLocation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// TrackBus upgrades to a websocket and pushes the simulated position
// every tracker interval until the client goes away.
func (h *Handler) TrackBus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if h.Tracker == nil {
		respondError(c, http.StatusServiceUnavailable, "tracking_unavailable", "live tracking is not running", nil)
		return
	}

	conn, err := trackUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogEvent(reqID(c), "tracking", "upgrade_failed", err.Error())
		return
	}
	defer conn.Close()

	// Drain reads so close frames from the client are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := h.Tracker.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	utils.LogEvent(reqID(c), "tracking", "stream_open", c.Param("id"))
	for {
		pos, ok := h.Tracker.Location(id)
		if ok {
			msg := gin.H{"busId": id, "location": pos}
			if err := conn.WriteJSON(msg); err != nil {
				utils.LogEvent(reqID(c), "tracking", "stream_closed", err.Error())
				return
			}
		}

		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
