package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "STORAGE_DRIVER", "BCRYPT_COST", "DATABASE_URL", "SIGNUP_RATE_WINDOW", "TRUSTED_PROXIES"} {
		t.Setenv(k, "")
	}
	c := Load()

	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, StoragePostgres, c.StorageDriver)
	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, time.Minute, c.SignupRateWindow)
	assert.Nil(t, c.TrustedProxyList())
	assert.NoError(t, c.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SIGNUP_RATE_WINDOW", "30s")
	t.Setenv("EVENTS_ENABLED", "true")
	c := Load()

	assert.Equal(t, StorageMemory, c.StorageDriver)
	assert.EqualValues(t, 25, c.DBMaxConns)
	assert.Equal(t, 30*time.Second, c.SignupRateWindow)
	assert.True(t, c.EventsEnabled)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "twelve")
	t.Setenv("HTTP_LOG_ENABLED", "sometimes")
	t.Setenv("SIGNUP_RATE_WINDOW", "soon")
	c := Load()

	assert.Equal(t, 12, c.BcryptCost)
	assert.False(t, c.HTTPLogEnabled)
	assert.Equal(t, time.Minute, c.SignupRateWindow)
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "users", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5433/users?sslmode=disable", c.PostgresDSN())

	c.DatabaseURL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", c.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())

	c.CORSAllowedOrigins = ""
	assert.Empty(t, c.CORSOrigins())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env: "production", StorageDriver: StoragePostgres,
			DBUser: "svc", DBPassword: "s3cret", DBMaxConns: 10, DBMinConns: 2,
		}
	}

	require.NoError(t, base().Validate())

	c := base()
	c.DBPassword = defaultDBPassword
	assert.ErrorContains(t, c.Validate(), "default database credentials")

	c.DatabaseURL = "postgres://svc:x@db/users"
	assert.NoError(t, c.Validate())

	c = base()
	c.StorageDriver = StorageMemory
	assert.ErrorContains(t, c.Validate(), "not allowed in production")

	c = base()
	c.StorageDriver = "sqlite"
	assert.ErrorContains(t, c.Validate(), "STORAGE_DRIVER")

	c = base()
	c.DBMinConns = 20
	assert.ErrorContains(t, c.Validate(), "DB_MIN_CONNS")

	c = base()
	c.RateLimitEnabled = true
	assert.ErrorContains(t, c.Validate(), "SIGNUP_RATE_LIMIT")
}

func TestTrustedProxies(t *testing.T) {
	c := &Config{StorageDriver: StorageMemory, TrustedProxies: "10.0.0.1, 172.16.0.0/12,"}
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, c.TrustedProxyList())
	assert.NoError(t, c.Validate())

	c.TrustedProxies = "10.0.0.1,not-a-proxy"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-proxy")
}
