// Package loader loads Lua content (player defaults and the enemy roster)
// into Go structs. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/types"
)

// Reward range used when an enemy does not declare one.
const (
	defaultGoldMin = 20
	defaultGoldMax = 50
)

// rawPlayer holds a Player table before compilation.
type rawPlayer struct {
	file  string
	table *lua.LTable
}

// rawEnemy holds an Enemy table before compilation.
type rawEnemy struct {
	id    string
	file  string
	table *lua.LTable
}

var playerFields = map[string]bool{
	"health": true, "mana": true, "gold": true, "inventory": true, "weapon": true,
}

var enemyFields = map[string]bool{
	"name": true, "health": true, "damage": true, "experience": true, "gold": true,
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) (string, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(v), nil
	default:
		return "", fmt.Errorf("field %q: expected string, got %s", key, v.Type())
	}
}

// getInt returns an integer field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) (int, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return 0, nil
	case lua.LNumber:
		return toInt(key, v)
	default:
		return 0, fmt.Errorf("field %q: expected number, got %s", key, v.Type())
	}
}

func toInt(key string, n lua.LNumber) (int, error) {
	f := float64(n)
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("field %q: expected integer, got %v", key, f)
	}
	return int(f), nil
}

// getStrings returns a list of strings from an array table field.
func getStrings(tbl *lua.LTable, key string) ([]string, error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return nil, nil
	case *lua.LTable:
		out := make([]string, 0, v.MaxN())
		for i := 1; i <= v.MaxN(); i++ {
			s, ok := v.RawGetInt(i).(lua.LString)
			if !ok {
				return nil, fmt.Errorf("field %q[%d]: expected string, got %s", key, i, v.RawGetInt(i).Type())
			}
			out = append(out, string(s))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: expected list, got %s", key, v.Type())
	}
}

// getRange returns a {low, high} pair, or ok=false if the field is missing.
func getRange(tbl *lua.LTable, key string) (low, high int, ok bool, err error) {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return 0, 0, false, nil
	case *lua.LTable:
		if v.MaxN() != 2 {
			return 0, 0, false, fmt.Errorf("field %q: expected {low, high}", key)
		}
		lo, isNum := v.RawGetInt(1).(lua.LNumber)
		hi, isNum2 := v.RawGetInt(2).(lua.LNumber)
		if !isNum || !isNum2 {
			return 0, 0, false, fmt.Errorf("field %q: expected {low, high} numbers", key)
		}
		if low, err = toInt(key, lo); err != nil {
			return 0, 0, false, err
		}
		if high, err = toInt(key, hi); err != nil {
			return 0, 0, false, err
		}
		return low, high, true, nil
	default:
		return 0, 0, false, fmt.Errorf("field %q: expected {low, high}, got %s", key, v.Type())
	}
}

// unknownFields lists string keys of tbl not in known, sorted.
func unknownFields(tbl *lua.LTable, known map[string]bool) []string {
	var out []string
	tbl.ForEach(func(k, _ lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok || !known[string(ks)] {
			out = append(out, k.String())
		}
	})
	sort.Strings(out)
	return out
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	switch len(coll.players) {
	case 0:
		return nil, fmt.Errorf("no Player{} definition found")
	case 1:
	default:
		return nil, fmt.Errorf("Player{} defined %d times (%s and %s)",
			len(coll.players), coll.players[0].file, coll.players[1].file)
	}

	player, err := compilePlayer(coll.players[0])
	if err != nil {
		return nil, fmt.Errorf("compiling player: %w", err)
	}
	defs := &state.Defs{
		Player:  player,
		Enemies: map[string]types.EnemyDef{},
	}

	for _, raw := range coll.enemies {
		if prev, ok := defs.Enemies[raw.id]; ok {
			return nil, fmt.Errorf("enemy %q defined twice (second in %s, first named %q)", raw.id, raw.file, prev.Name)
		}
		enemy, err := compileEnemy(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling enemy %s: %w", raw.id, err)
		}
		defs.Enemies[raw.id] = enemy
	}
	return defs, nil
}

func compilePlayer(raw rawPlayer) (types.PlayerDef, error) {
	tbl := raw.table
	if extra := unknownFields(tbl, playerFields); len(extra) > 0 {
		return types.PlayerDef{}, fmt.Errorf("unknown fields %v", extra)
	}

	var def types.PlayerDef
	var err error
	if def.Health, err = getInt(tbl, "health"); err != nil {
		return def, err
	}
	if def.Mana, err = getInt(tbl, "mana"); err != nil {
		return def, err
	}
	if def.Gold, err = getInt(tbl, "gold"); err != nil {
		return def, err
	}
	if def.Inventory, err = getStrings(tbl, "inventory"); err != nil {
		return def, err
	}
	if def.Weapon, err = getString(tbl, "weapon"); err != nil {
		return def, err
	}
	return def, nil
}

func compileEnemy(raw rawEnemy) (types.EnemyDef, error) {
	tbl := raw.table
	if extra := unknownFields(tbl, enemyFields); len(extra) > 0 {
		return types.EnemyDef{}, fmt.Errorf("unknown fields %v", extra)
	}

	def := types.EnemyDef{ID: raw.id}
	var err error
	if def.Name, err = getString(tbl, "name"); err != nil {
		return def, err
	}
	if def.Health, err = getInt(tbl, "health"); err != nil {
		return def, err
	}
	if def.Damage, err = getInt(tbl, "damage"); err != nil {
		return def, err
	}
	if def.Experience, err = getInt(tbl, "experience"); err != nil {
		return def, err
	}

	low, high, ok, err := getRange(tbl, "gold")
	if err != nil {
		return def, err
	}
	if !ok {
		low, high = defaultGoldMin, defaultGoldMax
	}
	def.GoldMin, def.GoldMax = low, high
	return def, nil
}
