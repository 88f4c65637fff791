package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoutWorkspace/internal/modules/workspace/domain"
)

func drain(c *Client) []domain.Message {
	var out []domain.Message
	for {
		select {
		case data := <-c.send:
			var msg domain.Message
			if err := sonic.Unmarshal(data, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func TestHubTargetsSessionAndWorkspace(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	a := NewClient(hub, nil, "u1", "u1:a", "club", "tok", 8, WorkspaceCommands{})
	b := NewClient(hub, nil, "u2", "u2:b", "club", "tok", 8, WorkspaceCommands{})
	c := NewClient(hub, nil, "u3", "u3:c", "rival", "tok", 8, WorkspaceCommands{})
	hub.AttachClientToAll(a)
	hub.AttachClientToAll(b)
	hub.AttachClientToAll(c)
	require.Equal(t, 3, hub.ClientCount())

	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	hub.Broadcast(context.Background(), domain.BuildStateMessage("club", "u1:a", "search", map[string]any{"hasMore": true}, now))
	assert.Len(t, drain(a), 1)
	assert.Empty(t, drain(b))
	assert.Empty(t, drain(c))

	hub.Broadcast(context.Background(), &domain.Message{
		Topic:    "workspace.notice",
		Metadata: map[string]string{"workspaceId": "club"},
	})
	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
	assert.Empty(t, drain(c))
}

func TestHubTopicSubscriptions(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	client := NewClient(hub, nil, "u1", "u1:a", "club", "tok", 8, WorkspaceCommands{})
	hub.AttachClient(client, []string{domain.TopicWorkspaceError, " "})

	at := time.Now()
	hub.Broadcast(context.Background(), domain.BuildStateMessage("club", "u1:a", "search", nil, at))
	hub.Broadcast(context.Background(), domain.BuildErrorMessage("u1:a", "search", assert.AnError, at))
	got := drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TopicWorkspaceError, got[0].Topic)

	hub.unsubscribe(client, domain.TopicWorkspaceError)
	hub.Broadcast(context.Background(), domain.BuildErrorMessage("u1:a", "search", assert.AnError, at))
	assert.Empty(t, drain(client))
}

func TestHubReplacesAndDetachesClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	closed := make(chan string, 2)
	first := NewClient(hub, nil, "u1", "u1:a", "club", "tok", 1, WorkspaceCommands{})
	first.AddCloseHook(func(c *Client) { closed <- "first" })
	hub.AttachClientToAll(first)

	second := NewClient(hub, nil, "u1", "u1:a", "club", "tok", 1, WorkspaceCommands{})
	hub.AttachClientToAll(second)
	assert.Equal(t, "first", <-closed)
	assert.Equal(t, 1, hub.ClientCount())

	msg := &domain.Message{Topic: "workspace.state", Metadata: map[string]string{"sessionId": "u1:a"}}
	hub.Broadcast(context.Background(), msg)
	hub.Broadcast(context.Background(), msg)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCommandProcessorPingAndSubscribe(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	triggered := make(chan json.RawMessage, 1)
	client := NewClient(hub, nil, "u1", "u1:a", "club", "tok", 8, WorkspaceCommands{
		Triggers: map[string]Trigger{
			"search": func(_ context.Context, payload json.RawMessage) error {
				triggered <- payload
				return nil
			},
		},
	})
	hub.AttachClient(client, nil)

	client.processCommand(Command{Action: " PING "})
	got := drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TopicSystemPong, got[0].Topic)

	client.processCommand(Command{Action: "subscribe", Topic: "workspace.state"})
	hub.Broadcast(context.Background(), domain.BuildStateMessage("club", "u1:a", "search", nil, time.Now()))
	assert.Len(t, drain(client), 1)

	client.processCommand(Command{Action: "Search", Payload: []byte(`{"pos":"Winger"}`)})
	select {
	case payload := <-triggered:
		assert.JSONEq(t, `{"pos":"Winger"}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("search trigger not invoked")
	}

	client.processCommand(Command{Action: ""})
	assert.Empty(t, triggered)
	assert.Empty(t, drain(client))
}

func TestCommandProcessorStateInlineAndUnknownActions(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	client := NewClient(hub, nil, "u1", "u1:a", "club", "tok", 8, WorkspaceCommands{
		State: func(reason string) *domain.Message {
			return domain.BuildStateMessage("club", "u1:a", reason, map[string]any{"hasMore": false}, time.Now())
		},
	})

	client.processCommand(Command{Action: "state"})
	got := drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TopicWorkspaceState, got[0].Topic)
	assert.Equal(t, "state", got[0].Metadata["reason"])

	client.processCommand(Command{Action: "teleport"})
	got = drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TopicWorkspaceError, got[0].Topic)
	assert.Equal(t, "teleport", got[0].Metadata["trigger"])

	bare := NewClient(hub, nil, "u2", "u2:a", "club", "tok", 8, WorkspaceCommands{})
	bare.processCommand(Command{Action: "state"})
	got = drain(bare)
	require.Len(t, got, 1)
	assert.Equal(t, ErrUnsupportedAction.Error(), got[0].Data.(map[string]any)["error"])
}

func TestCommandProcessorReportsOnlyRejectedTriggerErrors(t *testing.T) {
	t.Parallel()

	invalid := errors.New("invalid payload")
	remote := errors.New("catalog unavailable")
	done := make(chan string, 2)
	client := NewClient(NewHub(), nil, "u1", "u1:a", "club", "tok", 8, WorkspaceCommands{
		Triggers: map[string]Trigger{
			"save_search": func(context.Context, json.RawMessage) error {
				defer func() { done <- "save_search" }()
				return invalid
			},
			"load_more": func(context.Context, json.RawMessage) error {
				defer func() { done <- "load_more" }()
				return remote
			},
		},
		Rejected: func(err error) bool { return errors.Is(err, invalid) },
	})

	client.processCommand(Command{Action: "load_more"})
	client.processCommand(Command{Action: "save_search"})

	require.Eventually(t, func() bool { return len(done) == 2 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return len(client.send) == 1 }, time.Second, 5*time.Millisecond)
	got := drain(client)
	require.Len(t, got, 1)
	assert.Equal(t, domain.TopicWorkspaceError, got[0].Topic)
	assert.Equal(t, "save_search", got[0].Metadata["trigger"])
}
