package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/modules/workspace/infrastructure"
)

// RouteDeps collects what the HTTP surface needs.
type RouteDeps struct {
	Hub        *infrastructure.Hub
	Resolver   *SessionResolver
	Registry   *usecase.WorkspaceRegistry
	SendBuffer int
}

// RegisterRoutes mounts the trigger API, the websocket stream, /metrics and /healthz.
func RegisterRoutes(e *echo.Echo, deps RouteDeps) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":    "ok",
			"sessions":  deps.Registry.Len(),
			"wsClients": deps.Hub.ClientCount(),
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws/workspace", NewWebsocketHandler(deps.Hub, deps.Resolver, deps.Registry, deps.SendBuffer))

	api := e.Group("/api/v1/workspace", deps.Resolver.RequireSession())
	NewWorkspaceHandler().Register(api)
}
