package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/system/application/usecase"
	"mesaYaDash/internal/modules/system/domain"
	"mesaYaDash/internal/shared/httputil"
)

type Handler struct {
	service *usecase.Service
	errors  *httputil.ErrorMapper
}

func NewHandler(service *usecase.Service) *Handler {
	return &Handler{service: service, errors: httputil.NewErrorMapper()}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/activity", h.activity)
	g.GET("/system/health", h.health)
}

func (h *Handler) activity(c echo.Context) error {
	var cmd domain.ListActivityCommand
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	page, err := h.service.Activity(c.Request().Context(), cmd)
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) health(c echo.Context) error {
	ctx := c.Request().Context()
	refresh := c.QueryParam("refresh") == "true"
	fetch := h.service.Health
	if refresh {
		fetch = h.service.RefreshHealth
	}
	health, err := fetch(ctx)
	// An explicit refresh reports the backend failure.
	if !refresh {
		err = httputil.AllowStale(c, err)
	}
	if err != nil {
		return h.errors.Respond(c, err)
	}
	health.Status = health.Overall()
	return c.JSON(http.StatusOK, health)
}
