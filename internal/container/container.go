package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	repo "github.com/oksasatya/go-hexagonal-users/internal/domain/repository"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-hexagonal-users/internal/infrastructure/postgres"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/ratelimit"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/security"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/system"
	"github.com/oksasatya/go-hexagonal-users/internal/interface/middleware"
	"github.com/oksasatya/go-hexagonal-users/internal/router"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

// Store is a user repository that can report its own health.
type Store interface {
	repo.UserRepository
	Ping(ctx context.Context) error
}

// Container owns every long-lived component of the API process.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Store   Store
	Users   *application.UserService
	Limiter middleware.Counter

	pool      *pgxpool.Pool
	redis     *redis.Client
	publisher *rabbitmq.Publisher
}

// Build constructs the components cfg asks for. Optional collaborators
// (Redis, RabbitMQ) that cannot be reached are logged and left out.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = helpers.DiscardLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.buildStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.buildLimiter(ctx)
	c.buildPublisher()

	var events application.EventPublisher
	if c.publisher != nil {
		events = c.publisher
	}
	users, err := application.NewUserService(application.Deps{
		Repo:   c.Store,
		Hasher: security.NewBcryptHasher(cfg.BcryptCost),
		Clock:  system.Clock{},
		IDs:    system.UUIDGenerator{},
		Events: events,
		Logger: logger,
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Users = users
	return c, nil
}

func (c *Container) buildStore(ctx context.Context) error {
	cfg := c.Config
	if cfg.StorageDriver == config.StorageMemory {
		c.Logger.Warn("using in-memory storage; data is lost on restart")
		c.Store = memory.NewUserRepository()
		return nil
	}

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:             cfg.PostgresDSN(),
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	c.pool = pool
	if cfg.MigrationsDir != "" {
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return err
		}
	}
	c.Store = pginfra.NewUserRepository(pool)
	return nil
}

func (c *Container) buildLimiter(ctx context.Context) {
	cfg := c.Config
	if !cfg.RateLimitEnabled {
		return
	}
	c.redis = ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.redis.Ping(pingCtx).Err(); err != nil {
		c.Logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable; signup rate limit fails open until it recovers")
	}
	c.Limiter = ratelimit.NewRedisCounter(c.redis, cfg.AppName+":")
}

func (c *Container) buildPublisher() {
	cfg := c.Config
	if !cfg.EventsEnabled {
		return
	}
	pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		return
	}
	c.publisher = pub
}

// RouterDeps hands the built components to the HTTP layer.
func (c *Container) RouterDeps() router.Deps {
	return router.Deps{
		Config:  c.Config,
		Logger:  c.Logger,
		Users:   c.Users,
		DB:      c.Store,
		Limiter: c.Limiter,
	}
}

// Close releases connections in reverse construction order. Safe to call twice.
func (c *Container) Close() {
	if c.publisher != nil {
		c.publisher.Close()
		c.publisher = nil
	}
	if c.redis != nil {
		_ = c.redis.Close()
		c.redis = nil
	}
	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
}
