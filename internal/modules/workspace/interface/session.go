package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/shared/auth"
)

const (
	workspaceContextKey = "workspace"
	claimsContextKey    = "claims"
	bootstrapTimeout    = 15 * time.Second
)

// SessionResolver turns a request's bearer token into the caller's workspace.
type SessionResolver struct {
	validator auth.TokenValidator
	registry  *usecase.WorkspaceRegistry
}

func NewSessionResolver(validator auth.TokenValidator, registry *usecase.WorkspaceRegistry) *SessionResolver {
	return &SessionResolver{validator: validator, registry: registry}
}

// Resolve validates the token and returns the session's workspace, bootstrapping
// it on first use. Bootstrap failures are reported in the workspace state
// rather than failing the request.
func (r *SessionResolver) Resolve(ctx context.Context, req *http.Request) (*usecase.Workspace, *auth.Claims, error) {
	token := auth.ExtractToken(req, "token")
	claims, err := r.validator.Validate(token)
	if err != nil {
		return nil, nil, err
	}
	session := usecase.Session{
		WorkspaceID: claims.WorkspaceID(),
		SessionKey:  claims.SessionKey(),
		Token:       token,
	}
	ws, created := r.registry.GetOrCreate(session)
	if created {
		bootCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bootstrapTimeout)
		defer cancel()
		if err := ws.Bootstrap(bootCtx); err != nil {
			slog.Warn("workspace bootstrap incomplete",
				slog.String("workspaceId", session.WorkspaceID),
				slog.String("sessionId", session.SessionKey),
				slog.Any("error", err),
			)
		}
	}
	return ws, claims, nil
}

// RequireSession rejects requests without a valid token and stores the
// caller's workspace on the echo context.
func (r *SessionResolver) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, claims, err := r.Resolve(c.Request().Context(), c.Request())
			if err != nil {
				status := http.StatusUnauthorized
				message := "invalid token"
				if errors.Is(err, auth.ErrMissingToken) {
					message = "missing token"
				}
				slog.Warn("workspace auth rejected", slog.String("path", c.Path()), slog.String("ip", c.RealIP()), slog.Any("error", err))
				return echo.NewHTTPError(status, message)
			}
			c.Set(workspaceContextKey, ws)
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

func workspaceFrom(c echo.Context) *usecase.Workspace {
	ws, _ := c.Get(workspaceContextKey).(*usecase.Workspace)
	return ws
}
