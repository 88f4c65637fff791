package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/modules/workspace/infrastructure"
)

// trigger runs one presentation trigger against a workspace. State changes
// reach the client through the workspace broadcast.
type trigger func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error

type namePayload struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type shortlistPayload struct {
	PlayerID string `json:"playerId"`
	Category string `json:"category"`
}

var triggers = map[string]trigger{
	"search": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		criteria, err := criteriaFromJSON(payload)
		if err != nil {
			return fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		return ws.RunSearch(ctx, criteria)
	},
	"load_more": func(ctx context.Context, ws *usecase.Workspace, _ json.RawMessage) error {
		return ws.LoadMore(ctx)
	},
	"save_search": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		var req namePayload
		if err := decodePayload(payload, &req); err != nil {
			return err
		}
		_, err := ws.SaveCurrentSearch(ctx, req.Name)
		return err
	},
	"load_search": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		var req namePayload
		if err := decodePayload(payload, &req); err != nil {
			return err
		}
		return ws.LoadSavedSearch(ctx, req.ID)
	},
	"delete_search": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		var req namePayload
		if err := decodePayload(payload, &req); err != nil {
			return err
		}
		return ws.DeleteSavedSearch(ctx, req.ID)
	},
	"toggle_comparison": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		player, err := playerFromJSON(payload)
		if err != nil {
			return fmt.Errorf("%w: %v", errInvalidPayload, err)
		}
		_, err = ws.ToggleComparison(ctx, player)
		return err
	},
	"clear_comparison": func(ctx context.Context, ws *usecase.Workspace, _ json.RawMessage) error {
		ws.ClearComparison(ctx)
		return nil
	},
	"toggle_shortlist": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		var req shortlistPayload
		if err := decodePayload(payload, &req); err != nil {
			return err
		}
		return ws.ToggleShortlist(ctx, req.PlayerID, req.Category)
	},
	"create_category": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		var req namePayload
		if err := decodePayload(payload, &req); err != nil {
			return err
		}
		return ws.CreateCategory(ctx, req.Name)
	},
	"delete_category": func(ctx context.Context, ws *usecase.Workspace, payload json.RawMessage) error {
		var req namePayload
		if err := decodePayload(payload, &req); err != nil {
			return err
		}
		return ws.DeleteCategory(ctx, req.Name)
	},
}

func decodePayload(payload json.RawMessage, target any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}

// workspaceCommands binds the trigger table to one session workspace for the
// socket command processor.
func workspaceCommands(ws *usecase.Workspace) infrastructure.WorkspaceCommands {
	bound := make(map[string]infrastructure.Trigger, len(triggers))
	for action, run := range triggers {
		run := run
		bound[action] = func(ctx context.Context, payload json.RawMessage) error {
			return run(ctx, ws, payload)
		}
	}
	return infrastructure.WorkspaceCommands{
		Triggers: bound,
		State: func(reason string) *domain.Message {
			return stateMessage(ws, reason)
		},
		Rejected: func(err error) bool {
			return errors.Is(err, errInvalidPayload) || usecase.IsRejection(err)
		},
	}
}

func stateMessage(ws *usecase.Workspace, reason string) *domain.Message {
	session := ws.Session()
	return domain.BuildStateMessage(session.WorkspaceID, session.SessionKey, reason, ws.State(), time.Now())
}
