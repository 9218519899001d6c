package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// seqRNG returns values in order, cycling when exhausted.
type seqRNG struct {
	values []int
	i      int
}

func (s *seqRNG) IntRange(low, high int) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, low, high)
	}
	v := s.values[s.i%len(s.values)]
	s.i++
	return v, nil
}

// rangeRNG answers each call with a function of the requested range.
type rangeRNG func(low, high int) int

func (f rangeRNG) IntRange(low, high int) (int, error) {
	if low > high {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, low, high)
	}
	return f(low, high), nil
}

func lowRNG() rangeRNG  { return func(low, _ int) int { return low } }
func highRNG() rangeRNG { return func(_, high int) int { return high } }

// heroRNG hits as hard as possible and makes everything else minimal:
// enemies deal their lowest damage and flee rolls succeed.
func heroRNG() rangeRNG {
	return func(low, high int) int {
		if low == attackMin && high == attackMax {
			return high
		}
		return low
	}
}

// fakeUI scripts choices and names, and records everything shown.
type fakeUI struct {
	choices  []int
	names    []string
	lines    []types.Line
	statuses []types.Player
	menus    [][]string
	pauses   int
}

func (u *fakeUI) Show(line types.Line) { u.lines = append(u.lines, line) }

func (u *fakeUI) Status(p types.Player) { u.statuses = append(u.statuses, p) }

func (u *fakeUI) Choose(_ context.Context, options []string) (int, error) {
	u.menus = append(u.menus, options)
	if len(u.choices) == 0 {
		return 0, ErrInputAborted
	}
	c := u.choices[0]
	u.choices = u.choices[1:]
	return c, nil
}

func (u *fakeUI) Prompt(_ context.Context, _ string) (string, error) {
	if len(u.names) == 0 {
		return "", ErrInputAborted
	}
	n := u.names[0]
	u.names = u.names[1:]
	return n, nil
}

func (u *fakeUI) Pause(context.Context) error {
	u.pauses++
	return nil
}

func (u *fakeUI) saw(substr string) bool {
	for _, l := range u.lines {
		if strings.Contains(l.Text, substr) {
			return true
		}
	}
	return false
}

func testDefs() *state.Defs {
	return &state.Defs{
		Player: types.PlayerDef{
			Health:    100,
			Mana:      50,
			Gold:      100,
			Inventory: []string{PotionName, "Adaga Enferrujada"},
			Weapon:    "Adaga Enferrujada",
		},
		Enemies: map[string]types.EnemyDef{
			EnemyShadowWolf:      {ID: EnemyShadowWolf, Name: "Lobo Sombrio", Health: 60, Damage: 15, Experience: 30, GoldMin: 20, GoldMax: 50},
			EnemyBandit:          {ID: EnemyBandit, Name: "Bandido", Health: 40, Damage: 12, Experience: 25, GoldMin: 20, GoldMax: 50},
			EnemySkeletonWarrior: {ID: EnemySkeletonWarrior, Name: "Esqueleto Guerreiro", Health: 70, Damage: 18, Experience: 35, GoldMin: 20, GoldMax: 50},
			EnemyDarkLord:        {ID: EnemyDarkLord, Name: "Senhor das Trevas", Health: 150, Damage: 25, Experience: 100, GoldMin: 20, GoldMax: 50},
		},
	}
}

// weakDefs keeps the roster but makes every enemy hit for at most 5.
func weakDefs() *state.Defs {
	defs := testDefs()
	for id, def := range defs.Enemies {
		def.Damage = 0
		defs.Enemies[id] = def
	}
	return defs
}

func newTestEngine(defs *state.Defs, ui *fakeUI, rng Random) *Engine {
	e := New(defs, ui, rng)
	e.Player.Name = "Kael"
	return e
}
