package rules

import (
	"testing"

	"github.com/nathoo/lumina/types"
)

func condTestState() (*types.Player, types.Flags) {
	p := &types.Player{
		Health: 80, MaxHealth: 100,
		Mana: 40, MaxMana: 50,
		Level: 1,
		Gold:  60,
		Inventory: []string{"Poção de Vida", "Mapa do Reino"},
	}
	f := types.Flags{types.FlagSavedElf: true}
	return p, f
}

func TestEvalCondition(t *testing.T) {
	p, f := condTestState()

	tests := []struct {
		name string
		cond types.Condition
		want bool
	}{
		{"has_item: player has item", HasItem("Mapa do Reino"), true},
		{"has_item: player lacks item", HasItem("Espada de Aço"), false},
		{"flag_set: flag is true", FlagSet(types.FlagSavedElf), true},
		{"flag_set: flag is unset", FlagSet(types.FlagHeroicChoice), false},
		{"gold_at_least: exact", GoldAtLeast(60), true},
		{"gold_at_least: short", GoldAtLeast(100), false},
		{"mana_at_least: enough", ManaAtLeast(30), true},
		{"mana_at_least: short", ManaAtLeast(41), false},
		{"unknown type is false", types.Condition{Type: "bogus"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvalCondition(tt.cond, p, f); got != tt.want {
				t.Errorf("EvalCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalAll(t *testing.T) {
	p, f := condTestState()

	if !EvalAll(nil, p, f) {
		t.Error("empty conditions should be vacuously true")
	}
	if !EvalAll([]types.Condition{GoldAtLeast(50), HasItem("Poção de Vida")}, p, f) {
		t.Error("expected all conditions to pass")
	}
	if EvalAll([]types.Condition{GoldAtLeast(50), GoldAtLeast(500)}, p, f) {
		t.Error("one failing condition should fail the set")
	}
}
