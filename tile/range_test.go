package tile_test

import (
	"slices"
	"testing"

	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/google/go-cmp/cmp"
)

func TestRangeAll(t *testing.T) {
	r := tile.Range{XMin: 2, YMin: 1, XMax: 4, YMax: 2, Zoom: 3}

	want := []tile.Tile{
		{X: 2, Y: 1, Z: 3}, {X: 3, Y: 1, Z: 3}, {X: 4, Y: 1, Z: 3},
		{X: 2, Y: 2, Z: 3}, {X: 3, Y: 2, Z: 3}, {X: 4, Y: 2, Z: 3},
	}
	if diff := cmp.Diff(want, slices.Collect(r.All())); diff != "" {
		t.Errorf("All() mismatch (-want+got):\n%v", diff)
	}

	if got, want := r.Count(), uint64(len(want)); got != want {
		t.Errorf("Count() = %v, want = %v", got, want)
	}

	// Restartable: a second pass yields the same sequence.
	if diff := cmp.Diff(slices.Collect(r.All()), slices.Collect(r.All())); diff != "" {
		t.Errorf("All() not restartable (-first+second):\n%v", diff)
	}
}

func TestRangeAllEarlyStop(t *testing.T) {
	r := tile.Range{XMin: 0, YMin: 0, XMax: 7, YMax: 7, Zoom: 3}

	count := 0
	for range r.All() {
		count++
		if count == 5 {
			break
		}
	}
	if count != 5 {
		t.Errorf("stopped after %v tiles, want 5", count)
	}
}

func TestRangeContains(t *testing.T) {
	r := tile.Range{XMin: 2, YMin: 1, XMax: 4, YMax: 2, Zoom: 3}

	for _, tc := range []struct {
		tile tile.Tile
		want bool
	}{
		{tile: tile.Tile{X: 2, Y: 1, Z: 3}, want: true},
		{tile: tile.Tile{X: 4, Y: 2, Z: 3}, want: true},
		{tile: tile.Tile{X: 1, Y: 1, Z: 3}, want: false},
		{tile: tile.Tile{X: 2, Y: 3, Z: 3}, want: false},
		{tile: tile.Tile{X: 2, Y: 1, Z: 4}, want: false},
	} {
		if got := r.Contains(tc.tile); got != tc.want {
			t.Errorf("Contains(%v) = %v, want = %v", tc.tile, got, tc.want)
		}
	}
}

func TestRangeHilbertSameTiles(t *testing.T) {
	r := tile.Range{XMin: 3, YMin: 5, XMax: 9, YMax: 11, Zoom: 5}

	rowMajor := slices.Collect(r.All())
	curve := slices.Collect(r.Hilbert())

	sortTiles := func(tiles []tile.Tile) {
		slices.SortFunc(tiles, func(a, b tile.Tile) int {
			if a.Y != b.Y {
				return int(a.Y - b.Y)
			}
			return int(a.X - b.X)
		})
	}
	sortTiles(curve)
	if diff := cmp.Diff(rowMajor, curve); diff != "" {
		t.Errorf("Hilbert() tile set mismatch (-all+hilbert):\n%v", diff)
	}
}

func TestRangeHilbertLocality(t *testing.T) {
	// Over a full grid, consecutive tiles on the curve are grid neighbors.
	for z := int64(1); z <= 4; z++ {
		grid, err := (tile.Tile{X: 0, Y: 0, Z: 0}).SubTiles(z)
		if err != nil {
			t.Fatalf("SubTiles failed: %v", err)
		}

		tiles := slices.Collect(grid.Hilbert())
		if got, want := uint64(len(tiles)), grid.Count(); got != want {
			t.Fatalf("Hilbert() yielded %v tiles, want %v", got, want)
		}

		for i := 1; i < len(tiles); i++ {
			dx := tiles[i].X - tiles[i-1].X
			dy := tiles[i].Y - tiles[i-1].Y
			if dx*dx+dy*dy != 1 {
				t.Fatalf("z=%v: %v and %v are not neighbors on the curve", z, tiles[i-1], tiles[i])
			}
		}
	}
}
