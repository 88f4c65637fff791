package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/modules/workspace/domain"
)

const triggerTimeout = 20 * time.Second

// WorkspaceHandler exposes the presentation triggers over HTTP. Every
// successful trigger answers with the resulting workspace state.
type WorkspaceHandler struct{}

func NewWorkspaceHandler() *WorkspaceHandler {
	return &WorkspaceHandler{}
}

// Register mounts the trigger routes on g. g must carry RequireSession.
func (h *WorkspaceHandler) Register(g *echo.Group) {
	g.GET("/state", h.State)
	g.POST("/search", h.Search)
	g.POST("/load-more", h.LoadMore)
	g.POST("/searches", h.SaveSearch)
	g.POST("/searches/:id/load", h.LoadSearch)
	g.DELETE("/searches/:id", h.DeleteSearch)
	g.POST("/comparison/toggle", h.ToggleComparison)
	g.DELETE("/comparison", h.ClearComparison)
	g.POST("/shortlists", h.CreateCategory)
	g.POST("/shortlists/:category/:playerId/toggle", h.ToggleShortlist)
	g.DELETE("/shortlists/:category", h.DeleteCategory)
}

func triggerContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), triggerTimeout)
}

func respondState(c echo.Context, ws *usecase.Workspace) error {
	return c.JSON(http.StatusOK, ws.State())
}

func (h *WorkspaceHandler) State(c echo.Context) error {
	return respondState(c, workspaceFrom(c))
}

func (h *WorkspaceHandler) Search(c echo.Context) error {
	criteria, err := criteriaFromRequest(c.Request().Body, c.QueryParams())
	if err != nil {
		slog.Warn("workspace search bad criteria", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid criteria")
	}
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.RunSearch(ctx, criteria); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

func (h *WorkspaceHandler) LoadMore(c echo.Context) error {
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.LoadMore(ctx); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

type saveSearchRequest struct {
	Name string `json:"name"`
}

func (h *WorkspaceHandler) SaveSearch(c echo.Context) error {
	var req saveSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	entry, err := ws.SaveCurrentSearch(ctx, req.Name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *WorkspaceHandler) LoadSearch(c echo.Context) error {
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.LoadSavedSearch(ctx, pathParam(c, "id")); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

func (h *WorkspaceHandler) DeleteSearch(c echo.Context) error {
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.DeleteSavedSearch(ctx, pathParam(c, "id")); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

func (h *WorkspaceHandler) ToggleComparison(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	player, err := playerFromJSON(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid player")
	}
	ws := workspaceFrom(c)
	if _, err := ws.ToggleComparison(c.Request().Context(), player); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

func (h *WorkspaceHandler) ClearComparison(c echo.Context) error {
	ws := workspaceFrom(c)
	ws.ClearComparison(c.Request().Context())
	return respondState(c, ws)
}

func (h *WorkspaceHandler) ToggleShortlist(c echo.Context) error {
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.ToggleShortlist(ctx, pathParam(c, "playerId"), pathParam(c, "category")); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *WorkspaceHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = c.QueryParam("name")
	}
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.CreateCategory(ctx, req.Name); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, ws.State())
}

func (h *WorkspaceHandler) DeleteCategory(c echo.Context) error {
	ws := workspaceFrom(c)
	ctx, cancel := triggerContext(c)
	defer cancel()
	if err := ws.DeleteCategory(ctx, pathParam(c, "category")); err != nil {
		return httpError(c, err)
	}
	return respondState(c, ws)
}

func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, 1<<16))
}

// pathParam returns the unescaped value of a path parameter; category names
// routinely contain spaces.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

// playerFromJSON accepts the player object or {"player": {...}}.
func playerFromJSON(data []byte) (domain.Player, error) {
	var wrapped struct {
		Player map[string]any `json:"player"`
	}
	if err := sonic.Unmarshal(data, &wrapped); err == nil && wrapped.Player != nil {
		player, _ := domain.PlayerFromMap(wrapped.Player)
		return player, nil
	}
	var row map[string]any
	if err := sonic.Unmarshal(data, &row); err != nil {
		return domain.Player{}, err
	}
	player, _ := domain.PlayerFromMap(row)
	return player, nil
}
