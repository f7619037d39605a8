package httputil

import (
	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/platform/querycache"
)

// StaleHeader flags a response answered from the cache after a failed refresh.
const StaleHeader = "X-Cache-Stale"

// AllowStale accepts an error that came with a usable cached value: it marks
// the response with StaleHeader and returns nil. Other errors pass through.
func AllowStale(c echo.Context, err error) error {
	if err != nil && querycache.IsServedStale(err) {
		c.Response().Header().Set(StaleHeader, "true")
		return nil
	}
	return err
}
