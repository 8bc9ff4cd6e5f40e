package tile

import (
	"cmp"
	"iter"
	"slices"

	"github.com/google/hilbert"
)

// Range is the closed rectangle of tiles [XMin..XMax] x [YMin..YMax] at a
// single zoom level. Corners are inclusive; callers constructing a Range
// from raw coordinates are responsible for XMin <= XMax and YMin <= YMax.
type Range struct {
	XMin int64
	YMin int64
	XMax int64
	YMax int64
	Zoom int64
}

func (r Range) Count() uint64 {
	return uint64(r.XMax-r.XMin+1) * uint64(r.YMax-r.YMin+1)
}

func (r Range) Contains(t Tile) bool {
	return t.Z == r.Zoom &&
		r.XMin <= t.X && t.X <= r.XMax &&
		r.YMin <= t.Y && t.Y <= r.YMax
}

// All returns an iterator over every tile in the range, row-major with y
// outer and x inner. The order is stable; the iterator is restartable.
func (r Range) All() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		for y := r.YMin; y <= r.YMax; y++ {
			for x := r.XMin; x <= r.XMax; x++ {
				if !yield(Tile{X: x, Y: y, Z: r.Zoom}) {
					return
				}
			}
		}
	}
}

// Hilbert returns an iterator over the same tiles ordered by Hilbert curve
// distance on the zoom's 2^z x 2^z grid. Consecutive tiles of a full grid
// are neighbors, which keeps bulk reads and writes spatially local.
// Unlike All, it materializes the range up front: O(n log n) time,
// O(n) memory.
func (r Range) Hilbert() iter.Seq[Tile] {
	return func(yield func(Tile) bool) {
		h, err := hilbert.NewHilbert(1 << uint(r.Zoom))
		if err != nil {
			panic(err)
		}

		type distTile struct {
			dist int
			tile Tile
		}
		tiles := make([]distTile, 0, r.Count())
		for t := range r.All() {
			d, err := h.MapInverse(int(t.X), int(t.Y))
			if err != nil {
				panic(err)
			}
			tiles = append(tiles, distTile{dist: d, tile: t})
		}

		slices.SortFunc(tiles, func(a, b distTile) int {
			return cmp.Compare(a.dist, b.dist)
		})

		for _, t := range tiles {
			if !yield(t.tile) {
				return
			}
		}
	}
}
