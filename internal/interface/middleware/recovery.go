package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/pkg/response"
)

// Recovery turns a panic into a 500 envelope and logs it.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"panic":      recovered,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(response.RequestIDKey),
		}).Error("panic recovered")
		response.Error(c, http.StatusInternalServerError, "internal server error", "internal", nil)
	})
}
