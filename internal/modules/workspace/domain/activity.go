package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType names a workspace event published for downstream consumers.
type ActivityType string

const (
	ActivitySearchExecuted    ActivityType = "search.executed"
	ActivitySearchSaved       ActivityType = "search.saved"
	ActivitySearchDeleted     ActivityType = "search.deleted"
	ActivityShortlistUpdated  ActivityType = "shortlist.updated"
	ActivityComparisonUpdated ActivityType = "comparison.updated"
)

// ActivityEvent is an audit record of a confirmed workspace change.
type ActivityEvent struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	WorkspaceID string         `json:"workspaceId"`
	SessionKey  string         `json:"sessionKey,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	OccurredAt  time.Time      `json:"occurredAt"`
}

// NewActivityEvent stamps a fresh event with a random id.
func NewActivityEvent(kind ActivityType, workspaceID, sessionKey string, attributes map[string]any, at time.Time) ActivityEvent {
	return ActivityEvent{
		ID:          uuid.NewString(),
		Type:        kind,
		WorkspaceID: workspaceID,
		SessionKey:  sessionKey,
		Attributes:  attributes,
		OccurredAt:  at.UTC(),
	}
}
