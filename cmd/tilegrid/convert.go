package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/eak1mov/go-tilegrid/mb"
	"github.com/eak1mov/go-tilegrid/pack"
	"github.com/eak1mov/go-tilegrid/pack/spec"
	"github.com/eak1mov/go-tilegrid/tile"
	"github.com/eak1mov/go-tilegrid/xyz"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type convertCmd struct {
	inputFormat  string
	inputPath    string
	outputFormat string
	outputPath   string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "convert between tile storage formats" }
func (c *convertCmd) Usage() string {
	return "tilegrid convert -i <path> -o <path> [-if <format> | -of <format>]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input path")
	f.StringVar(&c.inputFormat, "if", "", "Input format (mbtiles, tilepack, xyz)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (mbtiles, tilepack, xyz)")
}

func convertInfo(metadata map[string]string) (pack.Info, error) {
	info := pack.Info{}

	formatValue, formatFound := metadata["format"]
	if formatFound {
		switch formatValue {
		case "pbf":
			info.TileType = spec.TileTypeMvt
			info.TileCompression = spec.CompressionGzip
		case "png":
			info.TileType = spec.TileTypePng
			info.TileCompression = spec.CompressionNone
		case "jpg":
			info.TileType = spec.TileTypeJpeg
			info.TileCompression = spec.CompressionNone
		case "webp":
			info.TileType = spec.TileTypeWebp
			info.TileCompression = spec.CompressionNone
		}
	}

	const E7 = 10000000.0
	boundsValue, boundsFound := metadata["bounds"]
	if boundsFound {
		var coords [4]float64
		if _, err := fmt.Sscanf(boundsValue, "%f,%f,%f,%f", &coords[0], &coords[1], &coords[2], &coords[3]); err != nil {
			return pack.Info{}, err
		}
		info.MinLonE7 = int32(coords[0] * E7)
		info.MinLatE7 = int32(coords[1] * E7)
		info.MaxLonE7 = int32(coords[2] * E7)
		info.MaxLatE7 = int32(coords[3] * E7)
	} else {
		info.MinLonE7 = int32(-180 * E7)
		info.MinLatE7 = int32(-tile.MaxLatitude * E7)
		info.MaxLonE7 = int32(180 * E7)
		info.MaxLatE7 = int32(tile.MaxLatitude * E7)
	}

	centerValue, centerFound := metadata["center"]
	if centerFound {
		var centerLat float64
		var centerLon float64
		if _, err := fmt.Sscanf(centerValue, "%f,%f,%d", &centerLon, &centerLat, &info.CenterZoom); err != nil {
			return pack.Info{}, err
		}
		info.CenterLonE7 = int32(centerLon * E7)
		info.CenterLatE7 = int32(centerLat * E7)
	}

	minzoomValue, minzoomFound := metadata["minzoom"]
	if minzoomFound {
		if _, err := fmt.Sscanf(minzoomValue, "%d", &info.MinZoom); err != nil {
			return pack.Info{}, err
		}
	}

	maxzoomValue, maxzoomFound := metadata["maxzoom"]
	if maxzoomFound {
		if _, err := fmt.Sscanf(maxzoomValue, "%d", &info.MaxZoom); err != nil {
			return pack.Info{}, err
		}
	}

	return info, nil
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	inputFormat := deduceFormat(c.inputFormat, c.inputPath)
	outputFormat := deduceFormat(c.outputFormat, c.outputPath)

	var err error
	var reader tile.Visitor
	switch inputFormat {
	case "mbtiles":
		reader, err = mb.NewReader(c.inputPath)
	case "tilepack":
		reader, err = pack.NewFileReader(c.inputPath)
	case "xyz", "":
		reader, err = xyz.NewReader(c.inputPath)
	default:
		log.Printf("invalid input format: %q", c.inputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	var packInfo pack.Info
	var packMetadata []byte
	if inputFormat == "mbtiles" && outputFormat == "tilepack" {
		metadata, err := reader.(*mb.Reader).ReadMetadata()
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		packInfo, err = convertInfo(metadata)
		if err != nil {
			log.Println("failed to convert metadata:", err)
			return subcommands.ExitFailure
		}
		jsonValue, found := metadata["json"]
		if found {
			packMetadata = []byte(jsonValue)
		}
	}

	var writer tile.Writer
	switch outputFormat {
	case "mbtiles":
		writer, err = mb.NewWriter(c.outputPath, mb.WithLogger(slog.Default()))
	case "tilepack":
		writer, err = pack.NewWriter(
			c.outputPath,
			pack.WithMetadata(packMetadata),
			pack.WithInfo(packInfo),
			pack.WithLogger(slog.Default()),
		)
	case "xyz", "":
		writer, err = xyz.NewWriter(c.outputPath)
	default:
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitTiles(func(t tile.Tile, tileData []byte) error {
		err := writer.WriteTile(t, tileData)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
