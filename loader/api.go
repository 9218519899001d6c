package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Player { health = 100, ... }
	L.SetGlobal("Player", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.players = append(coll.players, rawPlayer{file: coll.file, table: tbl})
		return 0
	}))

	// Enemy "id" { ... } is curried: Enemy("id") returns a function that takes a table.
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		file := coll.file
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.enemies = append(coll.enemies, rawEnemy{id: id, file: file, table: tbl})
			return 0
		}))
		return 1
	}))

	// Range(low, high) builds a closed range table for gold rewards.
	L.SetGlobal("Range", L.NewFunction(func(L *lua.LState) int {
		low := L.CheckInt(1)
		high := L.CheckInt(2)
		tbl := L.NewTable()
		tbl.Append(lua.LNumber(low))
		tbl.Append(lua.LNumber(high))
		L.Push(tbl)
		return 1
	}))
}
