package domain

import (
	"strings"
	"time"
)

// Metadata carries routing hints for realtime messages. The hub uses the
// sessionId and workspaceId keys to target clients.
type Metadata map[string]string

// Message is the envelope pushed to websocket clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// BuildStateMessage wraps a workspace state snapshot for the given session.
func BuildStateMessage(workspaceID, sessionKey, reason string, state any, at time.Time) *Message {
	meta := mergeInto(nil, Metadata{
		"workspaceId": workspaceID,
		"sessionId":   sessionKey,
		"reason":      reason,
	})
	return &Message{
		Topic:      TopicWorkspaceState,
		Entity:     WorkspaceEntity,
		Action:     ActionState,
		ResourceID: strings.TrimSpace(workspaceID),
		Metadata:   meta,
		Data:       state,
		Timestamp:  at.UTC(),
	}
}

// BuildErrorMessage reports a failed trigger back to the session that issued it.
func BuildErrorMessage(sessionKey, action string, err error, at time.Time) *Message {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Message{
		Topic:     TopicWorkspaceError,
		Entity:    WorkspaceEntity,
		Action:    ActionError,
		Metadata:  mergeInto(nil, Metadata{"sessionId": sessionKey, "trigger": action}),
		Data:      map[string]string{"error": detail},
		Timestamp: at.UTC(),
	}
}

func mergeInto(target map[string]string, extras Metadata) map[string]string {
	if len(extras) == 0 {
		return target
	}
	if target == nil {
		target = map[string]string{}
	}
	for key, value := range extras {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		target[trimmedKey] = trimmedValue
	}
	return target
}
