// Package effects implements centralized state mutation via the Apply function.
// Every effect type is one atomic operation. No branching logic in effects.
package effects

import (
	"strings"

	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// Event types emitted by Apply.
const (
	EventItemGained   = "item_gained"
	EventItemRemoved  = "item_removed"
	EventItemEquipped = "item_equipped"
	EventFlagSet      = "flag_set"
	EventGoldChanged  = "gold_changed"
	EventXPGained     = "xp_gained"
	EventManaSpent    = "mana_spent"
	EventRested       = "rested"
)

// Apply applies a list of effects to the player and flags, mutating them.
// Returns events emitted and output lines collected. Experience gains run
// the leveling rule immediately, so level_up events follow xp_gained.
func Apply(p *types.Player, f types.Flags, effects []types.Effect) ([]types.Event, []types.Line) {
	var events []types.Event
	var output []types.Line

	for _, eff := range effects {
		switch eff.Type {
		case types.EffectSay:
			line := eff.Line
			line.Text = interpolate(line.Text, p)
			line.Speaker = interpolate(line.Speaker, p)
			output = append(output, line)

		case types.EffectGiveItem:
			state.AddItem(p, eff.Item)
			events = append(events, types.Event{
				Type: EventItemGained,
				Data: map[string]any{"item": eff.Item},
			})

		case types.EffectRemoveItem:
			if state.RemoveItem(p, eff.Item) {
				events = append(events, types.Event{
					Type: EventItemRemoved,
					Data: map[string]any{"item": eff.Item},
				})
			}

		case types.EffectEquip:
			if state.Equip(p, eff.Item) {
				events = append(events, types.Event{
					Type: EventItemEquipped,
					Data: map[string]any{"item": eff.Item},
				})
			}

		case types.EffectSetFlag:
			state.SetFlag(f, eff.Flag)
			events = append(events, types.Event{
				Type: EventFlagSet,
				Data: map[string]any{"flag": state.FlagName(eff.Flag)},
			})

		case types.EffectAddGold:
			total := state.AddGold(p, eff.Amount)
			events = append(events, types.Event{
				Type: EventGoldChanged,
				Data: map[string]any{"amount": eff.Amount, "gold": total},
			})

		case types.EffectAddXP:
			p.Experience += eff.Amount
			events = append(events, types.Event{
				Type: EventXPGained,
				Data: map[string]any{"amount": eff.Amount},
			})
			events = append(events, state.ApplyLevelUps(p)...)

		case types.EffectSpendMana:
			if state.SpendMana(p, eff.Amount) {
				events = append(events, types.Event{
					Type: EventManaSpent,
					Data: map[string]any{"amount": eff.Amount},
				})
			}

		case types.EffectRest:
			state.Restore(p)
			events = append(events, types.Event{Type: EventRested, Data: map[string]any{}})

		default:
			// Unknown effect type: ignore.
		}
	}

	return events, output
}

// interpolate replaces template variables in text.
func interpolate(text string, p *types.Player) string {
	if !strings.Contains(text, "{") {
		return text
	}
	r := strings.NewReplacer(
		"{player.name}", p.Name,
		"{player.weapon}", p.Weapon,
	)
	return r.Replace(text)
}

// Say builds a say effect.
func Say(voice types.Voice, speaker, text string) types.Effect {
	return types.Effect{Type: types.EffectSay, Line: types.Line{Voice: voice, Speaker: speaker, Text: text}}
}

// Narrate builds a narrator say effect.
func Narrate(text string) types.Effect {
	return Say(types.VoiceNarrator, "", text)
}

// System builds a system-message say effect.
func System(text string) types.Effect {
	return Say(types.VoiceSystem, "", text)
}

// Warn builds a warning say effect, shown in the enemy color.
func Warn(text string) types.Effect {
	return Say(types.VoiceEnemy, "", text)
}

// GiveItem builds a give_item effect.
func GiveItem(item string) types.Effect {
	return types.Effect{Type: types.EffectGiveItem, Item: item}
}

// RemoveItem builds a remove_item effect.
func RemoveItem(item string) types.Effect {
	return types.Effect{Type: types.EffectRemoveItem, Item: item}
}

// Equip builds an equip effect.
func Equip(item string) types.Effect {
	return types.Effect{Type: types.EffectEquip, Item: item}
}

// SetFlag builds a set_flag effect.
func SetFlag(flag types.Flag) types.Effect {
	return types.Effect{Type: types.EffectSetFlag, Flag: flag}
}

// AddGold builds an add_gold effect. Negative amounts spend.
func AddGold(amount int) types.Effect {
	return types.Effect{Type: types.EffectAddGold, Amount: amount}
}

// AddXP builds an add_xp effect.
func AddXP(amount int) types.Effect {
	return types.Effect{Type: types.EffectAddXP, Amount: amount}
}

// SpendMana builds a spend_mana effect.
func SpendMana(amount int) types.Effect {
	return types.Effect{Type: types.EffectSpendMana, Amount: amount}
}

// Rest builds a rest effect.
func Rest() types.Effect {
	return types.Effect{Type: types.EffectRest}
}
