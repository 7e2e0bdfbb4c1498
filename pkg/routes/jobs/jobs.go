package jobs

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	fctx "github.com/Ramsey-B/fern/pkg/context"
	"github.com/Ramsey-B/fern/pkg/merging"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Service writes and reads canonical jobs
type Service interface {
	Upsert(ctx context.Context, jobNumber string, fields map[string]any) (*models.UpsertResult, error)
	Get(ctx context.Context, jobNumber string) (*models.CanonicalJob, error)
}

// Pruner removes canonical jobs no longer scheduled on a date
type Pruner interface {
	Prune(ctx context.Context, date models.Date, keep []string) ([]string, error)
}

// Emitter announces canonical job changes
type Emitter interface {
	EmitJobUpserted(ctx context.Context, result *models.UpsertResult) error
}

// Handler serves the canonical job routes
type Handler struct {
	service Service
	pruner  Pruner
	emitter Emitter
	logger  ectologger.Logger
}

// NewHandler creates a canonical job handler. emitter may be nil.
func NewHandler(service Service, pruner Pruner, emitter Emitter, logger ectologger.Logger) *Handler {
	return &Handler{
		service: service,
		pruner:  pruner,
		emitter: emitter,
		logger:  logger,
	}
}

// Register registers canonical job routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/prune", h.PruneJobs)
	g.GET("/:jobNumber", h.GetJob)
	g.PUT("/:jobNumber", h.UpsertJob)
	g.POST("/:jobNumber/complete", h.CompleteJob)
}

// GetJob returns the canonical job
func (h *Handler) GetJob(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("jobNumber"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// UpsertJob merges the request fields onto the canonical job
func (h *Handler) UpsertJob(c echo.Context) error {
	req, err := utils.BindRequest[models.UpsertJobRequest](c)
	if err != nil {
		return err
	}
	return h.upsert(c, req.Fields)
}

// CompleteJob marks the job complete or not complete
func (h *Handler) CompleteJob(c echo.Context) error {
	req, err := utils.BindRequest[models.CompleteJobRequest](c)
	if err != nil {
		return err
	}

	completedBy := req.CompletedBy
	if completedBy == "" {
		completedBy = fctx.GetUserID(c.Request().Context())
	}

	fields := map[string]any{
		merging.FieldCompleted:   *req.Completed,
		merging.FieldCompletedBy: nil,
	}
	if completedBy != "" {
		fields[merging.FieldCompletedBy] = completedBy
	}

	return h.upsert(c, fields)
}

func (h *Handler) upsert(c echo.Context, fields map[string]any) error {
	ctx := c.Request().Context()

	result, err := h.service.Upsert(ctx, c.Param("jobNumber"), fields)
	if err != nil {
		return err
	}

	if h.emitter != nil {
		// the write already happened; a failed publish is logged, not returned
		if err := h.emitter.EmitJobUpserted(ctx, result); err != nil {
			h.logger.WithContext(ctx).WithError(err).WithField("job_number", result.Job.JobNumber).Warn("Canonical job event was not published")
		}
	}

	status := http.StatusOK
	if result.Inserted {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

// PruneJobs deletes canonical jobs on a date whose job numbers are not listed
func (h *Handler) PruneJobs(c echo.Context) error {
	ctx := c.Request().Context()

	req, err := utils.BindRequest[models.PruneJobsRequest](c)
	if err != nil {
		return err
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return httperror.WrapError(http.StatusBadRequest, err)
	}

	deleted, err := h.pruner.Prune(ctx, date, req.JobNumbers)
	if err != nil {
		return err
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{
		"date":    req.Date,
		"kept":    len(req.JobNumbers),
		"deleted": len(deleted),
	}).Info("Pruned canonical jobs")

	return c.JSON(http.StatusOK, models.PruneJobsResponse{
		Date:    req.Date,
		Deleted: deleted,
	})
}
