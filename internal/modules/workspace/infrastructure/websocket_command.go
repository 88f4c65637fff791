package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// ErrUnsupportedAction is reported to the socket for actions nobody handles.
var ErrUnsupportedAction = errors.New("unsupported action")

const defaultTriggerTimeout = 15 * time.Second

// Command is one inbound websocket frame.
type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Trigger runs one workspace trigger with the frame payload. Resulting state
// reaches the socket through the workspace broadcast, not through the return.
type Trigger func(ctx context.Context, payload json.RawMessage) error

// WorkspaceCommands is what a socket can ask of its session workspace.
type WorkspaceCommands struct {
	Triggers map[string]Trigger
	// State snapshots the workspace for the inline "state" action.
	State func(reason string) *domain.Message
	// Rejected reports whether a trigger error is the caller's fault and
	// should be echoed back. Remote failures are broadcast by the workspace.
	Rejected func(error) bool
}

// CommandProcessor dispatches frames for one socket. Topic and state actions
// run inline on the read pump. Triggers run on their own goroutine so a slow
// catalog call never stalls reads.
type CommandProcessor struct {
	hub            *Hub
	workspace      WorkspaceCommands
	triggerTimeout time.Duration
}

func NewCommandProcessor(hub *Hub, workspace WorkspaceCommands) *CommandProcessor {
	return &CommandProcessor{
		hub:            hub,
		workspace:      workspace,
		triggerTimeout: defaultTriggerTimeout,
	}
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := strings.ToLower(strings.TrimSpace(cmd.Action))

	switch action {
	case "":
		return
	case "ping":
		client.SendDomainMessage(&domain.Message{
			Topic:     domain.TopicSystemPong,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionPong,
			Timestamp: time.Now().UTC(),
		})
	case "subscribe":
		if topic := strings.TrimSpace(cmd.Topic); topic != "" {
			p.hub.subscribe(client, topic)
			slog.Debug("ws subscribe", slog.String("sessionId", client.sessionKey), slog.String("topic", topic))
		}
	case "unsubscribe":
		if topic := strings.TrimSpace(cmd.Topic); topic != "" {
			p.hub.unsubscribe(client, topic)
		}
	case "state":
		if p.workspace.State == nil {
			p.reject(client, action, ErrUnsupportedAction)
			return
		}
		client.SendDomainMessage(p.workspace.State(action))
	default:
		run, ok := p.workspace.Triggers[action]
		if !ok {
			slog.Debug("ws unknown action", slog.String("sessionId", client.sessionKey), slog.String("action", action))
			p.reject(client, action, ErrUnsupportedAction)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.triggerTimeout)
		go func() {
			defer cancel()
			p.runTrigger(ctx, client, action, run, cmd.Payload)
		}()
	}
}

func (p *CommandProcessor) runTrigger(ctx context.Context, client *Client, action string, run Trigger, payload json.RawMessage) {
	err := run(ctx, payload)
	if err == nil {
		return
	}
	slog.Warn("ws trigger failed",
		slog.String("sessionId", client.sessionKey),
		slog.String("action", action),
		slog.Any("error", err),
	)
	if p.workspace.Rejected != nil && p.workspace.Rejected(err) {
		p.reject(client, action, err)
	}
}

func (p *CommandProcessor) reject(client *Client, action string, err error) {
	client.SendDomainMessage(domain.BuildErrorMessage(client.sessionKey, action, err, time.Now()))
}
