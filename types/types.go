// Package types defines the shared data structures for the Lumina engine.
// This package contains only type definitions and their constants.
package types

// Player holds the hero's runtime resources.
type Player struct {
	Name       string
	Health     int
	MaxHealth  int
	Mana       int
	MaxMana    int
	Level      int
	Experience int
	Gold       int
	Inventory  []string // ordered, duplicates allowed
	Weapon     string   // equipped weapon; always an item that was in inventory
}

// PlayerDef holds the starting values for a new player, loaded from content.
type PlayerDef struct {
	Health    int
	Mana      int
	Gold      int
	Inventory []string
	Weapon    string
}

// Flag identifies a story fact recorded from a past choice.
type Flag int

const (
	FlagHeroicChoice Flag = iota + 1
	FlagHumbleChoice
	FlagSavedElf
	FlagHonestWithGuards
	FlagKnowsAboutDungeon
)

// Flags records story facts. Absent keys read as false.
type Flags map[Flag]bool

// EnemyDef is the base definition of an enemy, loaded from content.
type EnemyDef struct {
	ID         string
	Name       string
	Health     int
	Damage     int
	Experience int
	GoldMin    int
	GoldMax    int
}

// Enemy is the per-encounter state of an opponent.
type Enemy struct {
	Name       string
	Health     int
	MaxHealth  int // fixed at encounter start, display only
	Damage     int
	Experience int
	GoldMin    int
	GoldMax    int
}

// Outcome is how an encounter ended.
type Outcome int

const (
	Victory Outcome = iota
	Fled
	Defeat
)

// Action is a player combat action, in menu order.
type Action int

const (
	ActionAttack Action = iota
	ActionPotion
	ActionFlee
)

// RoundResult is what the player's action produced in one combat round.
type RoundResult int

const (
	Attacked RoundResult = iota
	Healed
	HealFailed
	FledSuccess
	FledFailure
)

// Ending is how a whole session ended.
type Ending int

const (
	EndingNone Ending = iota
	EndingVictory
	EndingDefeat
)

// EffectType names one atomic state mutation.
type EffectType string

const (
	EffectSay        EffectType = "say"
	EffectGiveItem   EffectType = "give_item"
	EffectRemoveItem EffectType = "remove_item"
	EffectEquip      EffectType = "equip"
	EffectSetFlag    EffectType = "set_flag"
	EffectAddGold    EffectType = "add_gold"
	EffectAddXP      EffectType = "add_xp"
	EffectSpendMana  EffectType = "spend_mana"
	EffectRest       EffectType = "rest"
)

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   EffectType
	Item   string
	Flag   Flag
	Amount int
	Line   Line // for EffectSay
}

// ConditionType names a predicate over player state and flags.
type ConditionType string

const (
	CondHasItem     ConditionType = "has_item"
	CondFlagSet     ConditionType = "flag_set"
	CondGoldAtLeast ConditionType = "gold_at_least"
	CondManaAtLeast ConditionType = "mana_at_least"
)

// Condition is a predicate that must hold for an option's effects to apply.
type Condition struct {
	Type   ConditionType
	Item   string
	Flag   Flag
	Amount int
}

// Option is one selectable branch of a choice.
type Option struct {
	Label     string
	Requires  []Condition
	Effects   []Effect
	Otherwise []Effect // applied instead of Effects when Requires fails
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Voice identifies who is speaking a line, for styling.
type Voice int

const (
	VoiceNarrator Voice = iota
	VoicePlayer
	VoiceSage
	VoiceGuard
	VoiceEnemy
	VoiceNPC
	VoiceSystem
)

// Line is one unit of output handed to the display.
type Line struct {
	Voice   Voice
	Speaker string // empty for narration and system text
	Text    string
}
