package index_test

import (
	"bytes"
	"testing"

	"github.com/eak1mov/go-tilegrid/index"
	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/google/go-cmp/cmp"
)

func TestWriteReadAll(t *testing.T) {
	items := []index.Item{
		{ID: (tile.Tile{X: 0, Y: 0, Z: 0}).ID(), Offset: 0, Length: 100},
		{ID: (tile.Tile{X: 1, Y: 1, Z: 1}).ID(), Offset: 100, Length: 50},
		{ID: (tile.Tile{X: 4202, Y: 6091, Z: 14}).ID(), Offset: 150, Length: 2048},
	}

	var buffer bytes.Buffer
	if err := index.WriteAll(items, &buffer); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	got, err := index.ReadAll(buffer.Bytes())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("ReadAll(WriteAll(items)) mismatch (-want+got):\n%v", diff)
	}
}

func TestItemAccessors(t *testing.T) {
	want := tile.Tile{X: 5, Y: 3, Z: 3}
	item := index.Item{ID: want.ID(), Offset: 77, Length: 11}

	if got := item.Tile(); got != want {
		t.Errorf("Tile() = %v, want = %v", got, want)
	}
	if got, want := item.TileLocation(), (tile.Location{Offset: 77, Length: 11}); got != want {
		t.Errorf("TileLocation() = %v, want = %v", got, want)
	}
}

func TestReadAllEmpty(t *testing.T) {
	items, err := index.ReadAll(nil)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("ReadAll(nil) = %v items, want 0", len(items))
	}
}
