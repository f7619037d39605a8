package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/customers/application/usecase"
	"mesaYaDash/internal/modules/customers/domain"
	"mesaYaDash/internal/shared/httputil"
)

type Handler struct {
	service *usecase.Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrCustomerNotFound, http.StatusNotFound, "customer not found").
		WithMapping(domain.ErrMissingID, http.StatusBadRequest, "missing customer id")
	return &Handler{service: service, errors: mapper}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/customers", h.list)
	g.POST("/customers", h.create)
	g.PUT("/customers/:id", h.update)
	g.DELETE("/customers/:id", h.delete)
}

func (h *Handler) list(c echo.Context) error {
	var cmd domain.ListCustomersCommand
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	page, err := h.service.List(c.Request().Context(), cmd)
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	c.Response().Header().Set("X-Customer-Source", h.service.Source())
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) create(c echo.Context) error {
	var form domain.CustomerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	customer, err := h.service.Create(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *Handler) update(c echo.Context) error {
	var form domain.CustomerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	customer, err := h.service.Update(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
