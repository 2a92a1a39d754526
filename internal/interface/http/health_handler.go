package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/pkg/response"
)

// Pinger is satisfied by the storage adapters.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB      Pinger
	Service string
	Version string
	Logger  *logrus.Logger
	Timeout time.Duration
}

type healthStatus struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

func NewHealthHandler(db Pinger, service, version string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{DB: db, Service: service, Version: version, Logger: logger, Timeout: 2 * time.Second}
}

func (h *HealthHandler) Health(c *gin.Context) {
	st := healthStatus{
		Status:    "ok",
		Service:   h.Service,
		Version:   h.Version,
		Timestamp: time.Now().UTC(),
		Database:  "up",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		h.Logger.WithError(err).Warn("health check: database unreachable")
		st.Status = "degraded"
		st.Database = "down"
		response.Error(c, http.StatusServiceUnavailable, "database unavailable", "unavailable", st)
		return
	}
	response.Success(c, http.StatusOK, st, "healthy", nil)
}
