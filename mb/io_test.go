package mb_test

import (
	"maps"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-tilegrid/internal"
	"github.com/eak1mov/go-tilegrid/mb"
	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
)

func TestWriterReader(t *testing.T) {
	tiles := internal.TestTiles(3)
	metadata := map[string]string{
		"name":   "testset",
		"format": "pbf",
		"bounds": "-180,-85,180,85",
	}

	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath, mb.WithMetadata(metadata))
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer writer.Close()

	for tileID, tileData := range tiles {
		if err := writer.WriteTile(tileID, tileData); err != nil {
			t.Fatalf("WriteTile(%v) failed: %v", tileID, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	reader, err := mb.NewReader(filePath)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	readMetadata, err := reader.ReadMetadata()
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if diff := cmp.Diff(metadata, readMetadata); diff != "" {
		t.Errorf("ReadMetadata mismatch (-want+got):\n%v", diff)
	}

	if got, want := maps.Collect(tile.IterTiles(reader)), tiles; !cmp.Equal(got, want) {
		t.Errorf("VisitTiles data mismatch")
	}

	for tileID, tileData := range tiles {
		data, err := reader.ReadTile(tileID)
		if err != nil {
			t.Fatalf("ReadTile(%v) failed: %v", tileID, err)
		}
		if !cmp.Equal(data, tileData) {
			t.Errorf("ReadTile data mismatch for %v", tileID)
		}
	}

	missing, err := reader.ReadTile(tile.Tile{X: 9, Y: 9, Z: 9})
	if err != nil {
		t.Errorf("ReadTile(missing tile) failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("ReadTile(missing tile) expected empty tile, got: %v bytes", len(missing))
	}
}
