// Package state manages the mutable player record and story flags. Every
// helper leaves 0 <= health <= max health and 0 <= mana <= max mana.
package state

import (
	"fmt"

	"github.com/nathoo/lumina/types"
)

// Defs holds the immutable content loaded at startup.
type Defs struct {
	Player  types.PlayerDef
	Enemies map[string]types.EnemyDef
}

// NewPlayer creates a level 1 player from content defaults. The name is
// assigned later by SetName.
func NewPlayer(def types.PlayerDef) *types.Player {
	inv := make([]string, len(def.Inventory))
	copy(inv, def.Inventory)
	return &types.Player{
		Health:    def.Health,
		MaxHealth: def.Health,
		Mana:      def.Mana,
		MaxMana:   def.Mana,
		Level:     1,
		Gold:      def.Gold,
		Inventory: inv,
		Weapon:    def.Weapon,
	}
}

// NewEnemy creates a fresh encounter opponent from its definition.
func NewEnemy(def types.EnemyDef) *types.Enemy {
	return &types.Enemy{
		Name:       def.Name,
		Health:     def.Health,
		MaxHealth:  def.Health,
		Damage:     def.Damage,
		Experience: def.Experience,
		GoldMin:    def.GoldMin,
		GoldMax:    def.GoldMax,
	}
}

// SetName assigns the player's name. It can only be set once.
func SetName(p *types.Player, name string) error {
	if p.Name != "" {
		return fmt.Errorf("player name already set to %q", p.Name)
	}
	p.Name = name
	return nil
}

// HasItem returns true if the player carries at least one of the item.
func HasItem(p *types.Player, item string) bool {
	for _, it := range p.Inventory {
		if it == item {
			return true
		}
	}
	return false
}

// AddItem appends an item to the inventory.
func AddItem(p *types.Player, item string) {
	p.Inventory = append(p.Inventory, item)
}

// RemoveItem removes exactly one instance of item. Returns false if the
// player had none.
func RemoveItem(p *types.Player, item string) bool {
	for i, it := range p.Inventory {
		if it == item {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Equip sets the equipped weapon. The item must be in the inventory.
func Equip(p *types.Player, item string) bool {
	if !HasItem(p, item) {
		return false
	}
	p.Weapon = item
	return true
}

// Heal raises health by amount, capped at max health. Returns the amount
// actually restored.
func Heal(p *types.Player, amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.Health
	p.Health = min(p.Health+amount, p.MaxHealth)
	return p.Health - before
}

// Damage lowers health by amount, floored at 0. Returns the remaining health.
func Damage(p *types.Player, amount int) int {
	if amount > 0 {
		p.Health = max(p.Health-amount, 0)
	}
	return p.Health
}

// SpendMana deducts mana if enough is available.
func SpendMana(p *types.Player, amount int) bool {
	if amount < 0 || p.Mana < amount {
		return false
	}
	p.Mana -= amount
	return true
}

// Restore refills health and mana to their maximums.
func Restore(p *types.Player) {
	p.Health = p.MaxHealth
	p.Mana = p.MaxMana
}

// AddGold changes the gold purse by amount (negative to spend), floored at 0.
func AddGold(p *types.Player, amount int) int {
	p.Gold = max(p.Gold+amount, 0)
	return p.Gold
}

// Alive returns true while the player has health left.
func Alive(p *types.Player) bool {
	return p.Health > 0
}

// Snapshot returns a deep copy of the player, safe to hand to another goroutine.
func Snapshot(p *types.Player) types.Player {
	cp := *p
	cp.Inventory = make([]string, len(p.Inventory))
	copy(cp.Inventory, p.Inventory)
	return cp
}

// NewFlags creates an empty flag set.
func NewFlags() types.Flags {
	return types.Flags{}
}

// GetFlag returns the value of a flag. Unset flags return false.
func GetFlag(f types.Flags, flag types.Flag) bool {
	return f[flag]
}

// SetFlag records a story fact. Flags are never cleared.
func SetFlag(f types.Flags, flag types.Flag) {
	f[flag] = true
}

// FlagName returns the symbolic name of a flag.
func FlagName(flag types.Flag) string {
	switch flag {
	case types.FlagHeroicChoice:
		return "heroic_choice"
	case types.FlagHumbleChoice:
		return "humble_choice"
	case types.FlagSavedElf:
		return "saved_elf"
	case types.FlagHonestWithGuards:
		return "honest_with_guards"
	case types.FlagKnowsAboutDungeon:
		return "knows_about_dungeon"
	default:
		return "unknown"
	}
}
