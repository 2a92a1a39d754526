package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	cases := []struct {
		name     string
		ping     pingFunc
		status   int
		database string
		path     string
	}{
		{"up", func(context.Context) error { return nil }, http.StatusOK, "up", "data"},
		{"down", func(context.Context) error { return errors.New("refused") }, http.StatusServiceUnavailable, "down", "details"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealthHandler(tc.ping, "users-service", "1.2.3", discard())
			r := gin.New()
			r.GET("/health", h.Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tc.status, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			st := body["data"]
			if tc.path == "details" {
				st = body["error"].(map[string]any)["details"]
			}
			m := st.(map[string]any)
			assert.Equal(t, tc.database, m["database"])
			assert.Equal(t, "users-service", m["service"])
			assert.Equal(t, "1.2.3", m["version"])
		})
	}
}
