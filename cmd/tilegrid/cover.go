package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/google/subcommands"
)

type coverCmd struct {
	bbox    string
	zoom    int64
	hilbert bool
	ids     bool
}

func (c *coverCmd) Name() string     { return "cover" }
func (c *coverCmd) Synopsis() string { return "list the tiles covering a bounding box" }
func (c *coverCmd) Usage() string {
	return "tilegrid cover -b <minLon,minLat,maxLon,maxLat> -z <zoom> [-hilbert] [-ids]\n"
}
func (c *coverCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bbox, "b", "", "Bounding box as minLon,minLat,maxLon,maxLat")
	f.Int64Var(&c.zoom, "z", 0, "Zoom level")
	f.BoolVar(&c.hilbert, "hilbert", false, "Emit tiles in Hilbert curve order")
	f.BoolVar(&c.ids, "ids", false, "Emit global ids instead of z/x/y")
}

func (c *coverCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var minLon, minLat, maxLon, maxLat float64
	if _, err := fmt.Sscanf(c.bbox, "%f,%f,%f,%f", &minLon, &minLat, &maxLon, &maxLat); err != nil {
		log.Printf("invalid bounding box %q: %v", c.bbox, err)
		return subcommands.ExitFailure
	}

	// North-west corner gives the smallest x and y, y growing southward.
	northWest, err := tile.AtLocation(maxLat, minLon, c.zoom)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	southEast, err := tile.AtLocation(minLat, maxLon, c.zoom)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	cover := tile.Range{
		XMin: northWest.X,
		YMin: northWest.Y,
		XMax: southEast.X,
		YMax: southEast.Y,
		Zoom: c.zoom,
	}

	tiles := cover.All()
	if c.hilbert {
		tiles = cover.Hilbert()
	}

	for t := range tiles {
		if c.ids {
			fmt.Println(t.ID())
		} else {
			fmt.Println(t)
		}
	}

	return subcommands.ExitSuccess
}
