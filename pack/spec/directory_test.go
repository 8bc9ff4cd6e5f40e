package spec_test

import (
	"testing"

	"github.com/eak1mov/go-tilegrid/pack/spec"
	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/google/go-cmp/cmp"
)

// rangeEntries builds a sorted directory over every tile of the full grid at
// the given zoom, one entry per tile. Row-major enumeration yields strictly
// increasing global ids, so no extra sort is needed.
func rangeEntries(t *testing.T, zoom int64) []spec.Entry {
	t.Helper()

	grid, err := (tile.Tile{X: 0, Y: 0, Z: 0}).SubTiles(zoom)
	if err != nil {
		t.Fatalf("SubTiles failed: %v", err)
	}

	entries := make([]spec.Entry, 0, grid.Count())
	offset := uint64(0)
	for tc := range grid.All() {
		length := uint32(tc.ID()%1000 + 1)
		entries = append(entries, spec.Entry{
			ID:        tc.ID(),
			Offset:    offset,
			Length:    length,
			RunLength: 1,
		})
		offset += uint64(length)
	}
	return entries
}

func TestDirectorySerializer(t *testing.T) {
	for _, zoom := range []int64{0, 1, 4, 6} {
		entries := rangeEntries(t, zoom)

		deserialized, err := spec.DeserializeDirectory(spec.SerializeDirectory(entries))
		if err != nil {
			t.Errorf("DeserializeDirectory failed: %v", err)
		}
		if diff := cmp.Diff(entries, deserialized); diff != "" {
			t.Errorf("directory round trip mismatch at zoom %v (-want+got):\n%v", zoom, diff)
		}
	}
}

func TestDirectorySerializerEmpty(t *testing.T) {
	deserialized, err := spec.DeserializeDirectory(spec.SerializeDirectory(nil))
	if err != nil {
		t.Fatalf("DeserializeDirectory failed: %v", err)
	}
	if len(deserialized) != 0 {
		t.Errorf("expected empty directory, got %v entries", len(deserialized))
	}
}

func TestCompactEntries(t *testing.T) {
	// Four consecutive ids sharing one data stretch collapse to a single
	// run; the unrelated fifth entry survives.
	base := (tile.Tile{X: 0, Y: 0, Z: 4}).ID()
	entries := []spec.Entry{
		{ID: base + 0, Offset: 0, Length: 10, RunLength: 1},
		{ID: base + 1, Offset: 0, Length: 10, RunLength: 1},
		{ID: base + 2, Offset: 0, Length: 10, RunLength: 1},
		{ID: base + 3, Offset: 0, Length: 10, RunLength: 1},
		{ID: base + 9, Offset: 10, Length: 20, RunLength: 1},
	}

	want := []spec.Entry{
		{ID: base + 0, Offset: 0, Length: 10, RunLength: 4},
		{ID: base + 9, Offset: 10, Length: 20, RunLength: 1},
	}
	if diff := cmp.Diff(want, spec.CompactEntries(entries)); diff != "" {
		t.Errorf("CompactEntries mismatch (-want+got):\n%v", diff)
	}
}

func TestFindEntry(t *testing.T) {
	base := (tile.Tile{X: 0, Y: 0, Z: 4}).ID()
	entries := []spec.Entry{
		{ID: base + 0, Offset: 0, Length: 10, RunLength: 4},
		{ID: base + 9, Offset: 10, Length: 20, RunLength: 1},
	}

	for _, tc := range []struct {
		id    uint64
		want  spec.Entry
		found bool
	}{
		{id: base + 0, want: entries[0], found: true},
		{id: base + 3, want: entries[0], found: true},
		{id: base + 4, found: false},
		{id: base + 9, want: entries[1], found: true},
		{id: base + 10, found: false},
		{id: base - 1, found: false},
	} {
		got, found := spec.FindEntry(entries, tc.id)
		if found != tc.found || got != tc.want {
			t.Errorf("FindEntry(%v) = (%+v, %v), want (%+v, %v)", tc.id, got, found, tc.want, tc.found)
		}
	}
}
