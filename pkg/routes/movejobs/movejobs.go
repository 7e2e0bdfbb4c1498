package movejobs

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Reconciler groups quotes with the jobs they match
type Reconciler interface {
	Reconcile(ctx context.Context, filter models.JobFilter) (*models.ReconcileResponse, error)
}

// Handler serves the move-jobs reconciliation
type Handler struct {
	reconciler Reconciler
	location   *time.Location
	jobTypes   []string
	now        func() time.Time
}

// NewHandler creates a move-jobs handler. Dates default to today in location.
func NewHandler(reconciler Reconciler, location *time.Location, jobTypes []string) *Handler {
	return &Handler{
		reconciler: reconciler,
		location:   location,
		jobTypes:   jobTypes,
		now:        time.Now,
	}
}

// Register registers move-jobs routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.ListMoveJobs)
}

// ListMoveJobs reconciles the move jobs scheduled on ?date=YYYY-MM-DD
func (h *Handler) ListMoveJobs(c echo.Context) error {
	ctx := c.Request().Context()

	date := models.NewDate(h.now().In(h.location))
	if param := c.QueryParam("date"); param != "" {
		parsed, err := models.ParseDate(param)
		if err != nil {
			return httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid date %q, expected YYYY-MM-DD", param)
		}
		date = parsed
	}

	resp, err := h.reconciler.Reconcile(ctx, models.JobFilter{
		Date:     &date,
		JobTypes: h.jobTypes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
