package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/tables/application/usecase"
	"mesaYaDash/internal/modules/tables/domain"
	"mesaYaDash/internal/shared/httputil"
)

// Handler expone la vista de mesas del dashboard.
type Handler struct {
	service *usecase.Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrTableNotFound, http.StatusNotFound, "table not found").
		WithMapping(domain.ErrMissingID, http.StatusBadRequest, "missing table id").
		WithMapping(domain.ErrInvalidStatus, http.StatusUnprocessableEntity, "invalid table status")
	return &Handler{service: service, errors: mapper}
}

// Register mounts the routes under g, usually /api/dashboard.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/tables", h.list)
	g.GET("/tables/summary", h.summary)
	g.GET("/tables/:id", h.get)
	g.POST("/tables", h.create)
	g.PUT("/tables/:id", h.update)
	g.DELETE("/tables/:id", h.delete)
	g.PATCH("/tables/:id/status", h.changeStatus)
}

func (h *Handler) list(c echo.Context) error {
	tables, err := h.service.List(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": tables, "total": len(tables)})
}

func (h *Handler) summary(c echo.Context) error {
	counts, err := h.service.Summary(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}

func (h *Handler) get(c echo.Context) error {
	table, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

func (h *Handler) create(c echo.Context) error {
	var form domain.TableForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	table, err := h.service.Create(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, table)
}

func (h *Handler) update(c echo.Context) error {
	var form domain.TableForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	table, err := h.service.Update(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

func (h *Handler) delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) changeStatus(c echo.Context) error {
	var cmd domain.UpdateStatusCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	cmd.ID = c.Param("id")
	change, err := h.service.ChangeStatus(c.Request().Context(), cmd)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"before": change.Before, "after": change.After})
}
