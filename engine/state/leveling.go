package state

import "github.com/nathoo/lumina/types"

const (
	xpPerLevel     = 100
	healthPerLevel = 20
	manaPerLevel   = 10

	// EventLevelUp is emitted once per level gained.
	EventLevelUp = "level_up"
)

// XPThreshold returns the experience needed to leave the given level.
func XPThreshold(level int) int {
	return level * xpPerLevel
}

// ApplyLevelUps converts accumulated experience into levels. Each iteration
// uses the current level's threshold, so a large grant can raise several
// levels with compounding cost. Every level-up fully restores health and mana.
func ApplyLevelUps(p *types.Player) []types.Event {
	var events []types.Event
	for p.Experience >= XPThreshold(p.Level) {
		p.Experience -= XPThreshold(p.Level)
		p.Level++
		p.MaxHealth += healthPerLevel
		p.MaxMana += manaPerLevel
		Restore(p)
		events = append(events, types.Event{
			Type: EventLevelUp,
			Data: map[string]any{"level": p.Level},
		})
	}
	return events
}
