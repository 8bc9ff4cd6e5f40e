package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/google/subcommands"
)

type infoCmd struct {
	tilePath string
	tileID   uint64
	location string
	zoom     int64
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print id, bounds and lineage of a tile" }
func (c *infoCmd) Usage() string {
	return "tilegrid info [-t <z/x/y> | -id <id> | -loc <lat,lon> -z <zoom>]\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tilePath, "t", "", "Tile as z/x/y")
	f.Uint64Var(&c.tileID, "id", 0, "Global tile id")
	f.StringVar(&c.location, "loc", "", "Location as lat,lon")
	f.Int64Var(&c.zoom, "z", 0, "Zoom level for -loc")
}

func (c *infoCmd) resolveTile() (tile.Tile, error) {
	if c.tilePath != "" {
		var t tile.Tile
		if _, err := fmt.Sscanf(c.tilePath, "%d/%d/%d", &t.Z, &t.X, &t.Y); err != nil {
			return tile.Tile{}, fmt.Errorf("invalid tile %q: %w", c.tilePath, err)
		}
		return t, nil
	}

	if c.location != "" {
		var lat, lon float64
		if _, err := fmt.Sscanf(c.location, "%f,%f", &lat, &lon); err != nil {
			return tile.Tile{}, fmt.Errorf("invalid location %q: %w", c.location, err)
		}
		return tile.AtLocation(lat, lon, c.zoom)
	}

	return tile.FromID(c.tileID), nil
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	t, err := c.resolveTile()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("tile:    %v\n", t)
	fmt.Printf("id:      %v\n", t.ID())
	fmt.Printf("valid:   %v\n", t.Valid())

	if !t.Valid() {
		return subcommands.ExitSuccess
	}

	b := t.Bounds()
	lat, lon := t.Center()
	fmt.Printf("bounds:  %v,%v,%v,%v (lon,lat,lon,lat)\n", b.Left, b.Bottom, b.Right, b.Top)
	fmt.Printf("center:  %v,%v\n", lat, lon)

	if t.Z > 0 {
		fmt.Printf("parent:  %v (id %v)\n", t.Parent(), t.Parent().ID())
	}

	return subcommands.ExitSuccess
}
