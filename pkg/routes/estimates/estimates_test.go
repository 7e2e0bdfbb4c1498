package estimates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/models"
)

type fakeSearcher struct {
	req       models.EstimateSearchRequest
	estimates []models.MoveEstimate
}

func (f *fakeSearcher) Search(_ context.Context, req models.EstimateSearchRequest) ([]models.MoveEstimate, error) {
	f.req = req
	if req.SearchType == "email" {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "invalid search type")
	}
	return f.estimates, nil
}

func search(searcher Searcher, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
	NewHandler(searcher).Register(e.Group("/api/v1/estimates"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSearchEstimates(t *testing.T) {
	t.Run("should return matching estimates", func(t *testing.T) {
		searcher := &fakeSearcher{estimates: []models.MoveEstimate{{ID: "e-1"}}}
		rec := search(searcher, `{"searchType":"phone","searchValue":"(720) 555-1234"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.EstimateSearchPhone, searcher.req.SearchType)

		var resp models.EstimateSearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Estimates, 1)
		assert.Empty(t, resp.Message)
	})

	t.Run("should say when nothing matched", func(t *testing.T) {
		rec := search(&fakeSearcher{estimates: []models.MoveEstimate{}}, `{"searchType":"name","searchValue":"zed"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.EstimateSearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Estimates)
		assert.Equal(t, "No estimates found", resp.Message)
	})

	t.Run("should require a search value", func(t *testing.T) {
		rec := search(&fakeSearcher{}, `{"searchType":"name"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject unknown search types", func(t *testing.T) {
		rec := search(&fakeSearcher{}, `{"searchType":"email","searchValue":"a@b.c"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
