package hazardous

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/hazardous"
)

// Handler serves the hazardous waste collection calendar
type Handler struct {
	schedule *hazardous.Schedule
	location *time.Location
	now      func() time.Time
}

// NewHandler creates a hazardous waste handler. Dates default to today in location.
func NewHandler(schedule *hazardous.Schedule, location *time.Location) *Handler {
	return &Handler{
		schedule: schedule,
		location: location,
		now:      time.Now,
	}
}

// Register registers hazardous waste routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.GetCollections)
}

// GetCollections returns the collection sites open on ?date=YYYY-MM-DD
func (h *Handler) GetCollections(c echo.Context) error {
	date := h.now().In(h.location)
	if param := c.QueryParam("date"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			return httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid date %q, expected YYYY-MM-DD", param)
		}
		date = parsed
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, h.schedule.For(date))
}
