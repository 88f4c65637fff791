package domain

// ComparisonCapacity is the number of players compared side by side.
const ComparisonCapacity = 2

// Comparison is a 2-slot ring buffer of players ordered oldest first.
// Adding a third player evicts the oldest one; it never rejects.
type Comparison struct {
	players []Player
}

// NewComparison returns an empty selection.
func NewComparison() Comparison {
	return Comparison{}
}

// Toggle removes player when present, otherwise appends it, evicting the
// oldest entry when the selection is full.
func (c Comparison) Toggle(player Player) Comparison {
	next := make([]Player, 0, ComparisonCapacity)
	found := false
	for _, existing := range c.players {
		if existing.ID == player.ID {
			found = true
			continue
		}
		next = append(next, existing)
	}
	if found {
		return Comparison{players: next}
	}
	if len(next) >= ComparisonCapacity {
		next = next[len(next)-ComparisonCapacity+1:]
	}
	next = append(next, player)
	return Comparison{players: next}
}

// Clear empties the selection.
func (c Comparison) Clear() Comparison {
	return Comparison{}
}

func (c Comparison) Contains(id string) bool {
	for _, existing := range c.players {
		if existing.ID == id {
			return true
		}
	}
	return false
}

func (c Comparison) Len() int {
	return len(c.players)
}

// Players returns a copy of the selection, oldest first.
func (c Comparison) Players() []Player {
	out := make([]Player, len(c.players))
	copy(out, c.players)
	return out
}
