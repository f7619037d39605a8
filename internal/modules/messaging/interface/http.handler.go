package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/messaging/application/usecase"
	"mesaYaDash/internal/modules/messaging/domain"
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
	g.GET("/messages", h.list)
}

func (h *Handler) list(c echo.Context) error {
	var cmd domain.ListMessagesCommand
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	page, err := h.service.List(c.Request().Context(), cmd)
	if err = httputil.AllowStale(c, err); err != nil {
		return h.errors.Respond(c, err)
	}
	c.Response().Header().Set("X-Messaging-Source", h.service.Source())
	return c.JSON(http.StatusOK, page)
}
