package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/waitlist/application/usecase"
	"mesaYaDash/internal/modules/waitlist/domain"
	"mesaYaDash/internal/shared/httputil"
)

type Handler struct {
	service *usecase.Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrEntryNotFound, http.StatusNotFound, "waitlist entry not found").
		WithMapping(domain.ErrMissingID, http.StatusBadRequest, "missing waitlist entry id").
		WithMapping(domain.ErrInvalidStatus, http.StatusUnprocessableEntity, "invalid waitlist status")
	return &Handler{service: service, errors: mapper}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/waitlist", h.list)
	g.GET("/waitlist/queue", h.queue)
	g.POST("/waitlist", h.add)
	g.PATCH("/waitlist/:id/status", h.changeStatus)
	g.DELETE("/waitlist/:id", h.remove)
}

func (h *Handler) list(c echo.Context) error {
	entries, err := h.service.List(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": entries, "total": len(entries)})
}

func (h *Handler) queue(c echo.Context) error {
	entries, err := h.service.Queue(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": entries, "total": len(entries)})
}

func (h *Handler) add(c echo.Context) error {
	var form domain.EntryForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	entry, err := h.service.Add(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) changeStatus(c echo.Context) error {
	var cmd domain.UpdateStatusCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	cmd.ID = c.Param("id")
	if err := h.service.ChangeStatus(c.Request().Context(), cmd); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
