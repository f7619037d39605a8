package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/settings/application/usecase"
	"mesaYaDash/internal/modules/settings/domain"
	"mesaYaDash/internal/shared/httputil"
)

type Handler struct {
	service *usecase.Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrHolidayNotFound, http.StatusNotFound, "holiday not found").
		WithMapping(domain.ErrMissingID, http.StatusBadRequest, "missing holiday id")
	return &Handler{service: service, errors: mapper}
}

func (h *Handler) Register(g *echo.Group) {
	config := g.Group("/config")
	config.GET("/schedule", h.schedule)
	config.PUT("/schedule", h.updateSchedule)
	config.GET("/holidays", h.holidays)
	config.POST("/holidays", h.addHoliday)
	config.DELETE("/holidays/:id", h.removeHoliday)
	config.GET("/settings", h.settings)
	config.PUT("/settings", h.updateSettings)
}

func (h *Handler) schedule(c echo.Context) error {
	schedule, err := h.service.Schedule(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, schedule)
}

func (h *Handler) updateSchedule(c echo.Context) error {
	var form domain.ScheduleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	schedule, err := h.service.UpdateSchedule(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, schedule)
}

func (h *Handler) holidays(c echo.Context) error {
	holidays, err := h.service.Holidays(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": holidays, "total": len(holidays)})
}

func (h *Handler) addHoliday(c echo.Context) error {
	var form domain.HolidayForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	holiday, err := h.service.AddHoliday(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, holiday)
}

func (h *Handler) removeHoliday(c echo.Context) error {
	if err := h.service.RemoveHoliday(c.Request().Context(), c.Param("id")); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) settings(c echo.Context) error {
	settings, err := h.service.Settings(c.Request().Context())
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateSettings(c echo.Context) error {
	var form domain.SettingsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	settings, err := h.service.UpdateSettings(c.Request().Context(), form)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
