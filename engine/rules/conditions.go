// Package rules evaluates the preconditions attached to story options.
package rules

import (
	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// EvalCondition evaluates a single condition against the player and flags.
func EvalCondition(c types.Condition, p *types.Player, f types.Flags) bool {
	switch c.Type {
	case types.CondHasItem:
		return state.HasItem(p, c.Item)

	case types.CondFlagSet:
		return state.GetFlag(f, c.Flag)

	case types.CondGoldAtLeast:
		return p.Gold >= c.Amount

	case types.CondManaAtLeast:
		return p.Mana >= c.Amount

	default:
		return false
	}
}

// EvalAll returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAll(conditions []types.Condition, p *types.Player, f types.Flags) bool {
	for _, c := range conditions {
		if !EvalCondition(c, p, f) {
			return false
		}
	}
	return true
}

// GoldAtLeast builds a gold_at_least condition.
func GoldAtLeast(amount int) types.Condition {
	return types.Condition{Type: types.CondGoldAtLeast, Amount: amount}
}

// ManaAtLeast builds a mana_at_least condition.
func ManaAtLeast(amount int) types.Condition {
	return types.Condition{Type: types.CondManaAtLeast, Amount: amount}
}

// HasItem builds a has_item condition.
func HasItem(item string) types.Condition {
	return types.Condition{Type: types.CondHasItem, Item: item}
}

// FlagSet builds a flag_set condition.
func FlagSet(flag types.Flag) types.Condition {
	return types.Condition{Type: types.CondFlagSet, Flag: flag}
}
