package hazardous

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/hazardous"
	"github.com/Ramsey-B/fern/pkg/middleware"
)

func newServer(t *testing.T) *echo.Echo {
	schedule, err := hazardous.Default()
	require.NoError(t, err)

	h := NewHandler(schedule, time.UTC)
	h.now = func() time.Time { return time.Date(2025, 1, 6, 18, 0, 0, 0, time.UTC) }

	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	h.Register(e.Group("/api/v1/hazardous"))
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetCollections(t *testing.T) {
	t.Run("should default to today", func(t *testing.T) {
		rec := get(newServer(t), "/api/v1/hazardous")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var resp hazardous.Collections
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.HasCollectionToday)
		assert.Equal(t, "2025-01-06", resp.Date)
		assert.Equal(t, 1, resp.DayOfWeek)
	})

	t.Run("should use the requested date", func(t *testing.T) {
		rec := get(newServer(t), "/api/v1/hazardous?date=2025-01-04")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp hazardous.Collections
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.HasCollectionToday)
		assert.Empty(t, resp.Locations)
	})

	t.Run("should reject an invalid date", func(t *testing.T) {
		rec := get(newServer(t), "/api/v1/hazardous?date=tomorrow")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
