// Package content provides the embedded default game balance.
package content

import "embed"

// contentFS embeds the default Lua content at build time.
//
//go:embed *.lua
var contentFS embed.FS

// FS returns the embedded filesystem containing the default content.
func FS() embed.FS {
	return contentFS
}
