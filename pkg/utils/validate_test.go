package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestValidate(t *testing.T) {
	t.Run("should pass a valid struct", func(t *testing.T) {
		_, err := Validate(models.FindCustomerRequest{FirstName: "Sam", LastName: "Smith"})
		assert.NoError(t, err)
	})

	t.Run("should name the failing field", func(t *testing.T) {
		_, err := Validate(models.FindCustomerRequest{FirstName: "Sam"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LastName")
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("should check date formats", func(t *testing.T) {
		_, err := Validate(models.PruneJobsRequest{Date: "06/02/2025", JobNumbers: []string{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Date")
	})

	t.Run("should accept an empty but present list", func(t *testing.T) {
		_, err := Validate(models.PruneJobsRequest{Date: "2025-06-02", JobNumbers: []string{}})
		assert.NoError(t, err)
	})
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue("2025-06-02", "datetime=2006-01-02"))
	assert.Error(t, ValidateValue("tomorrow", "datetime=2006-01-02"))
}

func TestBindRequest(t *testing.T) {
	e := echo.New()

	newContext := func(body string) echo.Context {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("should bind and validate", func(t *testing.T) {
		req, err := BindRequest[models.EstimateSearchRequest](newContext(`{"searchType":"phone","searchValue":"720"}`))
		require.NoError(t, err)
		assert.Equal(t, models.EstimateSearchPhone, req.SearchType)
		assert.Equal(t, "720", req.SearchValue)
	})

	t.Run("should return 400 on invalid json", func(t *testing.T) {
		_, err := BindRequest[models.EstimateSearchRequest](newContext(`{`))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})

	t.Run("should return 400 on a missing field", func(t *testing.T) {
		_, err := BindRequest[models.EstimateSearchRequest](newContext(`{"searchType":"phone"}`))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})
}
