package usecase

import (
	"strings"
	"sync"
)

// WorkspaceFactory builds a workspace for a new session.
type WorkspaceFactory func(session Session) *Workspace

// WorkspaceRegistry maps session keys to their workspace.
type WorkspaceRegistry struct {
	mu      sync.RWMutex
	factory WorkspaceFactory
	entries map[string]*Workspace
}

func NewWorkspaceRegistry(factory WorkspaceFactory) *WorkspaceRegistry {
	return &WorkspaceRegistry{factory: factory, entries: make(map[string]*Workspace)}
}

// GetOrCreate returns the session's workspace, creating it on first use.
// created reports whether a new workspace was built. An existing workspace
// picks up the session's token.
func (r *WorkspaceRegistry) GetOrCreate(session Session) (ws *Workspace, created bool) {
	key := strings.TrimSpace(session.SessionKey)

	r.mu.RLock()
	existing, ok := r.entries[key]
	r.mu.RUnlock()
	if ok {
		existing.SetToken(session.Token)
		return existing, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.entries[key]; ok {
		existing.SetToken(session.Token)
		return existing, false
	}
	session.SessionKey = key
	ws = r.factory(session)
	r.entries[key] = ws
	return ws, true
}

func (r *WorkspaceRegistry) Get(sessionKey string) (*Workspace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ws, ok := r.entries[strings.TrimSpace(sessionKey)]
	return ws, ok
}

// ForWorkspace returns every live session workspace sharing workspaceID.
func (r *WorkspaceRegistry) ForWorkspace(workspaceID string) []*Workspace {
	workspaceID = strings.TrimSpace(workspaceID)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Workspace
	for _, ws := range r.entries {
		if ws.Session().WorkspaceID == workspaceID {
			out = append(out, ws)
		}
	}
	return out
}

// Drop forgets the session's workspace.
func (r *WorkspaceRegistry) Drop(sessionKey string) {
	r.mu.Lock()
	delete(r.entries, strings.TrimSpace(sessionKey))
	r.mu.Unlock()
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
