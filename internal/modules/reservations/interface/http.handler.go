package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/reservations/application/usecase"
	"mesaYaDash/internal/modules/reservations/domain"
	"mesaYaDash/internal/shared/httputil"
)

type Handler struct {
	service *usecase.Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrReservationNotFound, http.StatusNotFound, "reservation not found").
		WithMapping(domain.ErrMissingID, http.StatusBadRequest, "missing reservation id").
		WithMapping(domain.ErrInvalidStatus, http.StatusUnprocessableEntity, "invalid reservation status")
	return &Handler{service: service, errors: mapper}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/reservations", h.list)
	g.GET("/reservations/:id", h.get)
	g.POST("/reservations", h.create)
	g.PUT("/reservations/:id", h.update)
	g.PATCH("/reservations/:id/status", h.changeStatus)
	g.DELETE("/reservations/:id", h.delete)
}

func (h *Handler) list(c echo.Context) error {
	var cmd domain.ListReservationsCommand
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	page, err := h.service.List(c.Request().Context(), cmd)
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) get(c echo.Context) error {
	reservation, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) create(c echo.Context) error {
	var form domain.ReservationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	reservation, err := h.service.Create(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, reservation)
}

func (h *Handler) update(c echo.Context) error {
	var form domain.ReservationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	reservation, err := h.service.Update(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
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

func (h *Handler) delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
