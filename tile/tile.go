// Package tile implements the tile coordinate system of a tiled web map:
// XYZ grid coordinates, a 64-bit global tile id that linearizes the whole
// quad-tree across zoom levels, and Web Mercator geographic conversions.
package tile

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// MaxZoom is the deepest zoom level with a representable id.
// At zoom 31 the id space tops out just below 1<<64.
const MaxZoom = 31

// MaxLatitude is the Web Mercator latitude limit, arctan(sinh(pi)) in degrees.
const MaxLatitude = 85.0511

var ErrLatitudeRange = errors.New("tilegrid: latitude outside Web Mercator range")
var ErrZoomBelowTile = errors.New("tilegrid: target zoom below tile zoom")

// Tile represents tile coordinates in the XYZ scheme (Tiled web map).
// Y increases southward. The zero value is the single tile covering the
// world at zoom 0.
//
// Construction performs no validation: arithmetic on tiles (Parent at zoom 0,
// neighbors past the grid edge) may produce out-of-range values, and callers
// that do such arithmetic must check Valid themselves. ID, Bounds and the
// other derived values are meaningful for valid tiles only.
type Tile struct {
	X int64
	Y int64
	Z int64
}

func (t Tile) Valid() bool {
	return t.X >= 0 && t.Y >= 0 && t.Z >= 0 && t.Z <= MaxZoom &&
		t.X < 1<<uint(t.Z) && t.Y < 1<<uint(t.Z)
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// zoomBase returns the count of tiles at all zoom levels strictly below z,
// which is (4^z - 1) / 3. Exact integer arithmetic; float64 powers lose
// integer exactness long before the id space runs out.
func zoomBase(z int64) uint64 {
	if z <= 0 {
		return 0
	}
	return (1<<uint(2*z) - 1) / 3
}

// ID returns the global tile id: tiles are numbered breadth-first across
// zoom levels, row-major within a level, so
//
//	id = zoomBase(z) + y*2^z + x
//
// Ids are strictly zoom-ordered (every id at zoom z is below every id at
// zoom z+1) and the mapping to (x, y, z) is a bijection over valid tiles.
// The layout is a stable storage format; external systems persist these ids.
func (t Tile) ID() uint64 {
	return zoomBase(t.Z) + uint64(t.Y)<<uint(t.Z) + uint64(t.X)
}

// FromID decodes a global tile id produced by Tile.ID.
func FromID(id uint64) Tile {
	z := int64(bits.Len64(3*id+1)-1) / 2
	local := id - zoomBase(z)
	return Tile{
		X: int64(local & (1<<uint(z) - 1)),
		Y: int64(local >> uint(z)),
		Z: z,
	}
}

// AtLocation returns the tile containing the given point at the given zoom.
// Longitude 180 is treated as just inside the antimeridian rather than
// wrapping to x == 2^zoom. Latitudes outside the Web Mercator range fail
// with ErrLatitudeRange.
func AtLocation(lat, lon float64, zoom int64) (Tile, error) {
	x, y, err := locate(lat, lon, zoom)
	if err != nil {
		return Tile{}, err
	}
	return Tile{X: x, Y: y, Z: zoom}, nil
}

// LocationID is AtLocation for callers that need only the id.
func LocationID(lat, lon float64, zoom int64) (uint64, error) {
	x, y, err := locate(lat, lon, zoom)
	if err != nil {
		return 0, err
	}
	return zoomBase(zoom) + uint64(y)<<uint(zoom) + uint64(x), nil
}

func locate(lat, lon float64, zoom int64) (x, y int64, err error) {
	if lon == 180 {
		lon = 180 - 1e-6
	}
	if lat < -MaxLatitude || lat > MaxLatitude {
		return 0, 0, fmt.Errorf("%w: %v", ErrLatitudeRange, lat)
	}

	n := math.Exp2(float64(zoom))
	x = int64((lon + 180) / 360 * n)

	latRad := lat * degToRad
	y = int64((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n)

	return x, y, nil
}

// Parent returns the tile one zoom level up that contains t.
// The parent of a zoom 0 tile has zoom -1 and is not valid.
func (t Tile) Parent() Tile {
	return Tile{X: t.X / 2, Y: t.Y / 2, Z: t.Z - 1}
}

// SubTiles returns the rectangle of descendants of t at the target zoom.
// For zoom == t.Z that is the single-cell range holding t itself.
func (t Tile) SubTiles(zoom int64) (Range, error) {
	if zoom < t.Z {
		return Range{}, fmt.Errorf("%w: %d < %d", ErrZoomBelowTile, zoom, t.Z)
	}
	factor := int64(1) << uint(zoom-t.Z)
	return Range{
		XMin: t.X * factor,
		YMin: t.Y * factor,
		XMax: t.X*factor + factor - 1,
		YMax: t.Y*factor + factor - 1,
		Zoom: zoom,
	}, nil
}

// SubTileID returns the global id of the child of t at zoom t.Z+1 that
// contains the given point, assumed to lie inside t. Selection compares
// against the single-precision center: a point exactly on the center lands
// in the high-x, low-y child (lat >= center means the smaller y, since y
// grows southward).
func (t Tile) SubTileID(lat, lon float64) uint64 {
	centerLat, centerLon := t.Center()

	x, y := 2*t.X, 2*t.Y
	if lon >= float64(centerLon) {
		x++
	}
	if lat < float64(centerLat) {
		y++
	}

	return Tile{X: x, Y: y, Z: t.Z + 1}.ID()
}

// InvertX mirrors the tile column, for left-origin vs right-origin schemes.
func (t Tile) InvertX() Tile {
	return Tile{X: 1<<uint(t.Z) - t.X - 1, Y: t.Y, Z: t.Z}
}

// InvertY mirrors the tile row. This is the XYZ <-> TMS conversion.
func (t Tile) InvertY() Tile {
	return Tile{X: t.X, Y: 1<<uint(t.Z) - t.Y - 1, Z: t.Z}
}
