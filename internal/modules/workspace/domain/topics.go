package domain

import "strings"

const (
	SystemEntity    = "system"
	WorkspaceEntity = "workspace"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionState     = "state"
)

var (
	TopicWorkspaceState = CustomTopic(WorkspaceEntity, ActionState)
	TopicWorkspaceError = CustomTopic(WorkspaceEntity, ActionError)
)

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
