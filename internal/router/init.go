package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	handlers "github.com/oksasatya/go-hexagonal-users/internal/interface/http"
	"github.com/oksasatya/go-hexagonal-users/internal/interface/middleware"
	"github.com/oksasatya/go-hexagonal-users/internal/router/modules"
	"github.com/oksasatya/go-hexagonal-users/pkg/response"
)

// Deps are the already built collaborators the HTTP layer needs.
type Deps struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Users   *application.UserService
	DB      handlers.Pinger
	Limiter middleware.Counter // nil disables signup rate limiting
}

// NewEngine builds the gin engine with global middleware and every module mounted.
func NewEngine(d Deps) *gin.Engine {
	cfg := d.Config

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		d.Logger.WithError(err).Warn("invalid TRUSTED_PROXIES; using the socket peer as client ip")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Recovery(d.Logger))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(d.Logger))
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", "Location", middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
			MaxAge:        12 * time.Hour,
		}))
	}
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "route not found", "not_found", nil)
	})

	reg := NewRegistry(r)
	InitModules(reg, d)
	reg.RegisterAll()
	return r
}

// InitModules registers all application modules with the router registry
func InitModules(r *Registry, d Deps) {
	r.Add(modules.NewUserModule(
		handlers.NewUserHandler(d.Users, d.Logger),
		d.Limiter,
		d.Config.SignupRateLimit,
		d.Config.SignupRateWindow,
		d.Logger,
	))
	r.AddRoot(modules.NewHealthModule(
		handlers.NewHealthHandler(d.DB, d.Config.AppName, d.Config.AppVersion, d.Logger),
	))
}
