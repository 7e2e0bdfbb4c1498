package estimates

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Searcher finds saved estimates
type Searcher interface {
	Search(ctx context.Context, req models.EstimateSearchRequest) ([]models.MoveEstimate, error)
}

// Handler serves estimate search
type Handler struct {
	searcher Searcher
}

// NewHandler creates an estimate handler
func NewHandler(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// Register registers estimate routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/search", h.SearchEstimates)
}

// SearchEstimates searches estimates by phone, name, quote id or Workiz job number
func (h *Handler) SearchEstimates(c echo.Context) error {
	req, err := utils.BindRequest[models.EstimateSearchRequest](c)
	if err != nil {
		return err
	}

	estimates, err := h.searcher.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}

	resp := models.EstimateSearchResponse{Estimates: estimates}
	if len(estimates) == 0 {
		resp.Message = "No estimates found"
	}
	return c.JSON(http.StatusOK, resp)
}
