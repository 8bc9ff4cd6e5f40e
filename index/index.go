// Package index provides utilities for custom index formats.
package index

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/eak1mov/go-tilegrid/tile"
)

// Item represents a single record in the index, mapping a global tile id to
// its location (Offset, Length) in the tile storage file. The global id is
// the canonical storable tile identity, so no separate (x, y, z) columns are
// needed. The layout is fixed little-endian for portability to other
// languages and utilities.
type Item struct {
	ID     uint64
	Offset uint64
	Length uint32
}

func (i Item) Tile() tile.Tile {
	return tile.FromID(i.ID)
}

func (i Item) TileLocation() tile.Location {
	return tile.Location{Offset: i.Offset, Length: uint64(i.Length)}
}

func WriteAll(items []Item, writer io.Writer) error {
	return binary.Write(writer, binary.LittleEndian, items)
}

func ReadAll(indexData []byte) ([]Item, error) {
	count := len(indexData) / binary.Size(Item{})
	items := make([]Item, count)

	err := binary.Read(bytes.NewReader(indexData), binary.LittleEndian, items)
	if err != nil {
		return nil, err
	}

	return items, nil
}
