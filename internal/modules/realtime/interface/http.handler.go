package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaDash/internal/modules/realtime/domain"
	"mesaYaDash/internal/modules/realtime/infrastructure"
	"mesaYaDash/internal/shared/auth"
	"mesaYaDash/internal/shared/normalization"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewWebsocketHandler expone /ws/dashboard. Must run behind auth.Middleware:
// the claims identify the client. ?groups=tables,reservations narrows the
// stream; without it the client receives every group.
func NewWebsocketHandler(hub *infrastructure.Hub, bufferSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		groups := parseGroups(c.QueryParam("groups"))
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("userId", claims.Subject), slog.String("requestId", requestID), slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, claims.Subject, claims.SessionID, bufferSize)
		hub.AttachClient(client, groups)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"userId":    claims.Subject,
				"sessionId": client.SessionID(),
			},
			Data: map[string]any{
				"groups": groups,
				"roles":  claims.Roles,
			},
			Timestamp: time.Now().UTC(),
		})
		slog.Info("ws connected", slog.String("userId", claims.Subject), slog.String("sessionId", client.SessionID()), slog.Any("groups", groups), slog.String("ip", c.RealIP()), slog.String("requestId", requestID))
		return nil
	}
}

func parseGroups(raw string) []string {
	var groups []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		group := normalization.NormalizeEntity(part)
		if group == "" {
			continue
		}
		if _, dup := seen[group]; dup {
			continue
		}
		seen[group] = struct{}{}
		groups = append(groups, group)
	}
	return groups
}
