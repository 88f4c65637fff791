package usecase

import (
	"sync"

	"scoutWorkspace/internal/modules/workspace/domain"
)

// ComparisonSelection guards the session's comparison buffer. It is never persisted.
type ComparisonSelection struct {
	mu        sync.Mutex
	selection domain.Comparison
}

func NewComparisonSelection() *ComparisonSelection {
	return &ComparisonSelection{selection: domain.NewComparison()}
}

// Toggle applies the ring-buffer toggle and returns the new selection.
func (c *ComparisonSelection) Toggle(player domain.Player) []domain.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = c.selection.Toggle(player)
	return c.selection.Players()
}

func (c *ComparisonSelection) Clear() {
	c.mu.Lock()
	c.selection = c.selection.Clear()
	c.mu.Unlock()
}

func (c *ComparisonSelection) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Contains(id)
}

func (c *ComparisonSelection) Players() []domain.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Players()
}
