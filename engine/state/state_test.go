package state

import (
	"testing"

	"github.com/nathoo/lumina/types"
)

func testPlayerDef() types.PlayerDef {
	return types.PlayerDef{
		Health:    100,
		Mana:      50,
		Gold:      100,
		Inventory: []string{"Poção de Vida", "Adaga Enferrujada"},
		Weapon:    "Adaga Enferrujada",
	}
}

// checkBounds fails the test if any resource invariant is broken.
func checkBounds(t *testing.T, p *types.Player) {
	t.Helper()
	if p.Health < 0 || p.Health > p.MaxHealth {
		t.Errorf("health %d out of [0,%d]", p.Health, p.MaxHealth)
	}
	if p.Mana < 0 || p.Mana > p.MaxMana {
		t.Errorf("mana %d out of [0,%d]", p.Mana, p.MaxMana)
	}
}

func TestNewPlayer_Defaults(t *testing.T) {
	def := testPlayerDef()
	p := NewPlayer(def)

	if p.Health != 100 || p.MaxHealth != 100 {
		t.Errorf("health = %d/%d, want 100/100", p.Health, p.MaxHealth)
	}
	if p.Mana != 50 || p.MaxMana != 50 {
		t.Errorf("mana = %d/%d, want 50/50", p.Mana, p.MaxMana)
	}
	if p.Level != 1 || p.Experience != 0 {
		t.Errorf("level/xp = %d/%d, want 1/0", p.Level, p.Experience)
	}
	if p.Gold != 100 {
		t.Errorf("gold = %d, want 100", p.Gold)
	}
	if p.Weapon != "Adaga Enferrujada" {
		t.Errorf("weapon = %q", p.Weapon)
	}

	// Inventory must not alias the definition.
	p.Inventory[0] = "changed"
	if def.Inventory[0] != "Poção de Vida" {
		t.Error("NewPlayer should copy the default inventory")
	}
}

func TestSetName_Once(t *testing.T) {
	p := NewPlayer(testPlayerDef())
	if err := SetName(p, "Aria"); err != nil {
		t.Fatalf("first SetName: %v", err)
	}
	if err := SetName(p, "Other"); err == nil {
		t.Error("expected error on second SetName")
	}
	if p.Name != "Aria" {
		t.Errorf("name = %q, want Aria", p.Name)
	}
}

func TestRemoveItem_OnlyOne(t *testing.T) {
	p := NewPlayer(testPlayerDef())
	AddItem(p, "Poção de Vida")

	if !RemoveItem(p, "Poção de Vida") {
		t.Fatal("expected potion to be removed")
	}
	if !HasItem(p, "Poção de Vida") {
		t.Error("second potion should remain")
	}
	if !RemoveItem(p, "Poção de Vida") {
		t.Fatal("expected second potion to be removed")
	}
	if RemoveItem(p, "Poção de Vida") {
		t.Error("removing a missing item should return false")
	}
	if len(p.Inventory) != 1 || p.Inventory[0] != "Adaga Enferrujada" {
		t.Errorf("inventory = %v", p.Inventory)
	}
}

func TestEquip_RequiresInventory(t *testing.T) {
	p := NewPlayer(testPlayerDef())
	if Equip(p, "Espada de Aço") {
		t.Error("should not equip an item not in inventory")
	}
	AddItem(p, "Espada de Aço")
	if !Equip(p, "Espada de Aço") {
		t.Error("should equip an owned item")
	}
	if p.Weapon != "Espada de Aço" {
		t.Errorf("weapon = %q", p.Weapon)
	}
}

func TestHealAndDamage_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		health     int
		heal       int
		damage     int
		wantHealth int
	}{
		{"heal capped", 90, 40, 0, 100},
		{"heal partial", 10, 40, 0, 50},
		{"damage floored", 10, 0, 30, 0},
		{"damage exact", 13, 0, 13, 0},
		{"negative heal ignored", 50, -10, 0, 50},
		{"negative damage ignored", 50, 0, -10, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(testPlayerDef())
			p.Health = tt.health
			Heal(p, tt.heal)
			Damage(p, tt.damage)
			if p.Health != tt.wantHealth {
				t.Errorf("health = %d, want %d", p.Health, tt.wantHealth)
			}
			checkBounds(t, p)
		})
	}
}

func TestSpendMana(t *testing.T) {
	p := NewPlayer(testPlayerDef())
	if !SpendMana(p, 30) {
		t.Fatal("expected to spend 30 mana")
	}
	if p.Mana != 20 {
		t.Errorf("mana = %d, want 20", p.Mana)
	}
	if SpendMana(p, 30) {
		t.Error("should not spend more mana than available")
	}
	if p.Mana != 20 {
		t.Errorf("failed spend changed mana to %d", p.Mana)
	}
	checkBounds(t, p)
}

func TestAddGold_Floor(t *testing.T) {
	p := NewPlayer(testPlayerDef())
	AddGold(p, 50)
	if p.Gold != 150 {
		t.Errorf("gold = %d, want 150", p.Gold)
	}
	AddGold(p, -200)
	if p.Gold != 0 {
		t.Errorf("gold = %d, want 0", p.Gold)
	}
}

func TestSnapshot_DeepCopy(t *testing.T) {
	p := NewPlayer(testPlayerDef())
	snap := Snapshot(p)
	AddItem(p, "Mapa do Reino")
	p.Inventory[0] = "mutated"

	if len(snap.Inventory) != 2 || snap.Inventory[0] != "Poção de Vida" {
		t.Errorf("snapshot shares inventory: %v", snap.Inventory)
	}
}

func TestFlags_AbsentIsFalse(t *testing.T) {
	f := NewFlags()
	if GetFlag(f, types.FlagSavedElf) {
		t.Error("unset flag should be false")
	}
	SetFlag(f, types.FlagSavedElf)
	if !GetFlag(f, types.FlagSavedElf) {
		t.Error("set flag should be true")
	}
}

func TestFlagName(t *testing.T) {
	tests := []struct {
		flag types.Flag
		want string
	}{
		{types.FlagHeroicChoice, "heroic_choice"},
		{types.FlagHumbleChoice, "humble_choice"},
		{types.FlagSavedElf, "saved_elf"},
		{types.FlagHonestWithGuards, "honest_with_guards"},
		{types.FlagKnowsAboutDungeon, "knows_about_dungeon"},
		{types.Flag(99), "unknown"},
	}
	for _, tt := range tests {
		if got := FlagName(tt.flag); got != tt.want {
			t.Errorf("FlagName(%d) = %q, want %q", tt.flag, got, tt.want)
		}
	}
}

func TestNewEnemy(t *testing.T) {
	e := NewEnemy(types.EnemyDef{
		ID: "bandit", Name: "Bandido", Health: 40, Damage: 12, Experience: 25, GoldMin: 20, GoldMax: 50,
	})
	if e.Health != 40 || e.MaxHealth != 40 {
		t.Errorf("health = %d/%d, want 40/40", e.Health, e.MaxHealth)
	}
	if e.Name != "Bandido" || e.Damage != 12 || e.Experience != 25 {
		t.Errorf("unexpected enemy %+v", e)
	}
}
