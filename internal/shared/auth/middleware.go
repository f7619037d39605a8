package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth.claims"

// BearerToken extracts the token of an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// RequestToken looks at the Authorization header first and then at the
// token query parameter, which browsers use for websockets.
func RequestToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := BearerToken(r.Header.Get(echo.HeaderAuthorization)); token != "" {
		return token
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// Middleware rejects requests without a valid token and stores the claims
// on the echo context. With roles set, the session must carry one of them.
func Middleware(validator TokenValidator, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := validator.Validate(RequestToken(c.Request()))
			if err != nil {
				slog.Debug("dashboard request rejected", slog.String("path", c.Path()), slog.String("ip", c.RealIP()), slog.Any("error", err))
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if len(roles) > 0 && !hasAnyRole(claims, roles) {
				slog.Warn("dashboard request forbidden", slog.String("userId", claims.Subject), slog.Any("roles", claims.Roles))
				return echo.NewHTTPError(http.StatusForbidden, ErrForbidden.Error())
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

func hasAnyRole(claims *Claims, roles []string) bool {
	for _, role := range roles {
		if claims.HasRole(role) {
			return true
		}
	}
	return false
}
