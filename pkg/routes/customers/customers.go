package customers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

// Finder looks customers up by name
type Finder interface {
	FindCustomer(ctx context.Context, req models.FindCustomerRequest) (*models.FindCustomerResponse, error)
}

// Handler serves customer lookups
type Handler struct {
	finder Finder
}

// NewHandler creates a customer handler
func NewHandler(finder Finder) *Handler {
	return &Handler{finder: finder}
}

// Register registers customer routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("/find", h.FindCustomer)
}

// FindCustomer returns the jobs booked under a first and last name
func (h *Handler) FindCustomer(c echo.Context) error {
	req, err := utils.BindRequest[models.FindCustomerRequest](c)
	if err != nil {
		return err
	}

	resp, err := h.finder.FindCustomer(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
