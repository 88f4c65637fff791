package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/modules/workspace/infrastructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamTopics are the topics every workspace socket starts subscribed to.
var streamTopics = []string{
	domain.TopicWorkspaceState,
	domain.TopicWorkspaceError,
	domain.TopicSystemConnected,
}

// NewWebsocketHandler exposes /ws/workspace. The token comes from the
// Authorization header or the token query parameter. The socket receives the
// session's state stream and accepts the workspace triggers as commands.
func NewWebsocketHandler(
	hub *infrastructure.Hub,
	resolver *SessionResolver,
	registry *usecase.WorkspaceRegistry,
	sendBuffer int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		ctx, cancel := context.WithTimeout(c.Request().Context(), bootstrapTimeout)
		defer cancel()
		ws, claims, err := resolver.Resolve(ctx, c.Request())
		if err != nil {
			slog.Warn("ws handler auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			logger.Warnf("ws rejected: invalid token ip=%s reqID=%s: %v", peerIP, requestID, err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.Any("error", err))
			logger.Errorf("ws upgrade failed ip=%s reqID=%s: %v", peerIP, requestID, err)
			return err
		}

		session := ws.Session()
		client := infrastructure.NewClient(hub, conn, claims.Subject, session.SessionKey, session.WorkspaceID, session.Token, sendBuffer, workspaceCommands(ws))
		client.AddCloseHook(func(closed *infrastructure.Client) {
			key := closed.SessionKey()
			// Hooks run under the hub lock when a reconnect replaces this
			// client, so the check has to happen outside of it.
			go func() {
				if hub.HasClient(key) {
					return
				}
				registry.Drop(key)
				slog.Info("ws workspace session closed", slog.String("sessionId", key))
			}()
		})
		hub.AttachClient(client, streamTopics)

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:      domain.TopicSystemConnected,
			Entity:     domain.SystemEntity,
			Action:     domain.ActionConnected,
			ResourceID: session.WorkspaceID,
			Metadata: map[string]string{
				"workspaceId": session.WorkspaceID,
				"sessionId":   session.SessionKey,
			},
			Data: map[string]any{
				"topics": streamTopics,
				"roles":  claims.Roles,
			},
			Timestamp: time.Now().UTC(),
		}
		client.SendDomainMessage(connected)
		client.SendDomainMessage(stateMessage(ws, "connected"))

		logger.Infof("ws connected workspace=%s session=%s ip=%s reqID=%s", session.WorkspaceID, session.SessionKey, peerIP, requestID)
		return nil
	}
}
