package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-hexagonal-users/internal/interface/http"
	"github.com/oksasatya/go-hexagonal-users/internal/interface/middleware"
)

// UserModule wires the user handlers under /users.
// Signups (POST /users) are rate limited per client IP when a counter is set.
type UserModule struct {
	Handler      *handlers.UserHandler
	Counter      middleware.Counter
	SignupLimit  int
	SignupWindow time.Duration
	Logger       *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, counter middleware.Counter, limit int, window time.Duration, logger *logrus.Logger) *UserModule {
	return &UserModule{Handler: h, Counter: counter, SignupLimit: limit, SignupWindow: window, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Counter, m.SignupLimit, m.SignupWindow, middleware.KeyByIPAndPath(), m.Logger)

	users := rg.Group("/users")
	{
		users.POST("", signupLimiter, m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id/email", m.Handler.ChangeEmail)
		users.PUT("/:id/password", m.Handler.ChangePassword)
		users.PUT("/:id/active", m.Handler.SetActive)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
