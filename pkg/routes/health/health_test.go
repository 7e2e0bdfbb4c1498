package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(_ context.Context) error { return p.err }

func get(t *testing.T, checker *Checker, path string) (int, Response) {
	t.Helper()
	e := echo.New()
	checker.Register(e.Group("/health"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestChecker(t *testing.T) {
	t.Run("should always be live", func(t *testing.T) {
		code, resp := get(t, NewChecker(fakePinger{err: errors.New("down")}, "1.0.0"), "/health/live")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, StatusHealthy, resp.Status)
		assert.Equal(t, "1.0.0", resp.Version)
	})

	t.Run("should not be ready before startup completes", func(t *testing.T) {
		code, resp := get(t, NewChecker(fakePinger{}, "1.0.0"), "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, StatusUnhealthy, resp.Checks["startup"].Status)
	})

	t.Run("should be ready when the database answers", func(t *testing.T) {
		checker := NewChecker(fakePinger{}, "1.0.0")
		checker.SetReady(true)

		code, resp := get(t, checker, "/health/ready")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, StatusHealthy, resp.Checks["database"].Status)
	})

	t.Run("should be unhealthy when the database is down", func(t *testing.T) {
		checker := NewChecker(fakePinger{err: errors.New("connection refused")}, "1.0.0")
		checker.SetReady(true)

		code, resp := get(t, checker, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "connection refused", resp.Checks["database"].Message)
	})
}
