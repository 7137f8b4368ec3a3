package handlers

import (
	"net/http"
	"strconv"

	intconfig "abcbus/internal/config"
	"abcbus/internal/http/middleware"
	"abcbus/internal/tracker"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the services. Per-request service
// values carry the request id into the event log.
type Handler struct {
	Env     intconfig.Env
	Tracker *tracker.Tracker
}

func New(env intconfig.Env, trk *tracker.Tracker) *Handler {
	return &Handler{Env: env, Tracker: trk}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid payload", err.Error())
		return false
	}
	return true
}

func reqID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid "+name, nil)
		return 0, false
	}
	return id, true
}
