package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nathoo/lumina/content"
	"github.com/nathoo/lumina/engine"
)

const testPlayer = `
Player {
  health    = 100,
  mana      = 50,
  gold      = 100,
  inventory = { "Poção de Vida", "Adaga Enferrujada" },
  weapon    = "Adaga Enferrujada",
}
`

const testEnemies = `
Enemy "shadow_wolf"      { name = "Lobo Sombrio", health = 60, damage = 15, experience = 30 }
Enemy "bandit"           { name = "Bandido", health = 40, damage = 12, experience = 25, gold = Range(5, 10) }
Enemy "skeleton_warrior" { name = "Esqueleto Guerreiro", health = 70, damage = 18, experience = 35 }
Enemy "dark_lord"        { name = "Senhor das Trevas", health = 150, damage = 25, experience = 100, gold = { 40, 90 } }
`

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, src := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(src)}
	}
	return fsys
}

func TestLoad_EmbeddedContent(t *testing.T) {
	defs, err := Load(content.FS())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	p := defs.Player
	if p.Health != 100 || p.Mana != 50 || p.Gold != 100 {
		t.Errorf("player = %+v", p)
	}
	if p.Weapon != "Adaga Enferrujada" {
		t.Errorf("weapon = %q", p.Weapon)
	}
	if len(p.Inventory) != 2 || p.Inventory[0] != engine.PotionName {
		t.Errorf("inventory = %v", p.Inventory)
	}

	tests := []struct {
		id                 string
		name               string
		health, damage, xp int
	}{
		{engine.EnemyShadowWolf, "Lobo Sombrio", 60, 15, 30},
		{engine.EnemyBandit, "Bandido", 40, 12, 25},
		{engine.EnemySkeletonWarrior, "Esqueleto Guerreiro", 70, 18, 35},
		{engine.EnemyDarkLord, "Senhor das Trevas", 150, 25, 100},
	}
	for _, tt := range tests {
		e, ok := defs.Enemies[tt.id]
		if !ok {
			t.Errorf("enemy %q not found", tt.id)
			continue
		}
		if e.Name != tt.name || e.Health != tt.health || e.Damage != tt.damage || e.Experience != tt.xp {
			t.Errorf("enemy %q = %+v", tt.id, e)
		}
		if e.GoldMin != 20 || e.GoldMax != 50 {
			t.Errorf("enemy %q gold = [%d, %d], want [20, 50]", tt.id, e.GoldMin, e.GoldMax)
		}
	}
}

func TestLoad_GoldRanges(t *testing.T) {
	defs, err := Load(testFS(map[string]string{"player.lua": testPlayer, "enemies.lua": testEnemies}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	tests := []struct {
		id       string
		min, max int
	}{
		{"shadow_wolf", defaultGoldMin, defaultGoldMax},
		{"bandit", 5, 10},
		{"dark_lord", 40, 90},
	}
	for _, tt := range tests {
		e := defs.Enemies[tt.id]
		if e.GoldMin != tt.min || e.GoldMax != tt.max {
			t.Errorf("%s gold = [%d, %d], want [%d, %d]", tt.id, e.GoldMin, e.GoldMax, tt.min, tt.max)
		}
	}
}

func TestLoad_LuaHelpersAvailable(t *testing.T) {
	src := `
local base = 10
local function scaled(n) return math.floor(n * 1.5) end
Enemy "shadow_wolf"      { name = string.format("Lobo %s", "Sombrio"), health = scaled(40), damage = base + 5, experience = 30 }
Enemy "bandit"           { name = "Bandido", health = 40, damage = 12, experience = 25 }
Enemy "skeleton_warrior" { name = "Esqueleto Guerreiro", health = 70, damage = 18, experience = 35 }
Enemy "dark_lord"        { name = "Senhor das Trevas", health = 150, damage = 25, experience = 100 }
`
	defs, err := Load(testFS(map[string]string{"player.lua": testPlayer, "roster.lua": src}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	wolf := defs.Enemies["shadow_wolf"]
	if wolf.Name != "Lobo Sombrio" || wolf.Health != 60 || wolf.Damage != 15 {
		t.Errorf("wolf = %+v", wolf)
	}
}

func TestLoad_NoLuaFiles(t *testing.T) {
	_, err := Load(testFS(map[string]string{"README.md": "nothing"}))
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Fatalf("expected no .lua files error, got %v", err)
	}
}

func TestLoad_SyntaxError(t *testing.T) {
	_, err := Load(testFS(map[string]string{"player.lua": "Player {"}))
	if err == nil || !strings.Contains(err.Error(), "player.lua") {
		t.Fatalf("expected error naming player.lua, got %v", err)
	}
}

func TestLoad_Sandboxed(t *testing.T) {
	for _, call := range []string{
		`os.exit(1)`,
		`io.open("x")`,
		`dofile("x.lua")`,
		`loadstring("return 1")()`,
		`require("os")`,
		`math.random(1, 6)`,
	} {
		_, err := Load(testFS(map[string]string{"player.lua": testPlayer, "enemies.lua": testEnemies, "evil.lua": call}))
		if err == nil {
			t.Errorf("%s: expected error", call)
		}
	}
}

func TestLoad_MissingPlayer(t *testing.T) {
	_, err := Load(testFS(map[string]string{"enemies.lua": testEnemies}))
	if err == nil || !strings.Contains(err.Error(), "Player") {
		t.Fatalf("expected missing player error, got %v", err)
	}
}

func TestLoad_DuplicatePlayer(t *testing.T) {
	_, err := Load(testFS(map[string]string{
		"player.lua":  testPlayer,
		"enemies.lua": testEnemies + testPlayer,
	}))
	if err == nil || !strings.Contains(err.Error(), "defined 2 times") {
		t.Fatalf("expected duplicate player error, got %v", err)
	}
}

func TestLoad_DuplicateEnemy(t *testing.T) {
	_, err := Load(testFS(map[string]string{
		"player.lua":  testPlayer,
		"enemies.lua": testEnemies,
		"extra.lua":   `Enemy "bandit" { name = "Outro Bandido", health = 10, damage = 1, experience = 1 }`,
	}))
	if err == nil || !strings.Contains(err.Error(), `"bandit" defined twice`) {
		t.Fatalf("expected duplicate enemy error, got %v", err)
	}
}

func TestLoad_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", `Enemy "x" { name = "X", health = 1, armor = 3 }`, "unknown fields [armor]"},
		{"wrong type", `Enemy "x" { name = 7, health = 1 }`, `field "name": expected string`},
		{"fraction", `Enemy "x" { name = "X", health = 1.5 }`, `field "health": expected integer`},
		{"bad range", `Enemy "x" { name = "X", health = 1, gold = { 1 } }`, `field "gold": expected {low, high}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testFS(map[string]string{"player.lua": testPlayer, "enemies.lua": testEnemies, "x.lua": tt.src}))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_ValidationError(t *testing.T) {
	_, err := Load(testFS(map[string]string{
		"player.lua": `Player { health = 0, weapon = "Espada" }`,
	}))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	// Health, weapon, and the four missing enemies.
	if len(ve.Errors) != 6 {
		t.Errorf("expected 6 errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(t.TempDir() + "/nope"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"z.lua", "enemies.lua", "player.lua", "a.lua"})
	want := []string{"player.lua", "a.lua", "enemies.lua", "z.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedLuaFiles = %v, want %v", got, want)
		}
	}
}
