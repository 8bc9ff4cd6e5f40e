// Package internal provides shared fixtures for storage backend tests.
package internal

import (
	"fmt"

	"github.com/eak1mov/go-tilegrid/tile"
)

// TestTiles returns a deterministic tileset: the full grids of zooms 0 through
// maxZoom plus a deeper city-sized patch, each tile carrying a payload derived
// from its global id.
func TestTiles(maxZoom int64) map[tile.Tile][]byte {
	tiles := make(map[tile.Tile][]byte)

	world := tile.Tile{X: 0, Y: 0, Z: 0}
	for z := int64(0); z <= maxZoom; z++ {
		grid, err := world.SubTiles(z)
		if err != nil {
			panic(err)
		}
		for t := range grid.All() {
			tiles[t] = fmt.Appendf(nil, "tile-%d", t.ID())
		}
	}

	patch, err := (tile.Tile{X: 4202, Y: 6091, Z: 14}).SubTiles(16)
	if err != nil {
		panic(err)
	}
	for t := range patch.All() {
		tiles[t] = fmt.Appendf(nil, "tile-%d", t.ID())
	}

	return tiles
}
