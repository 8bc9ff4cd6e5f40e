package tile

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Bounds is the geographic extent of a tile in degrees, from the inverse
// Web Mercator projection. Fields are single precision: the values are part
// of the stored-data contract of this package and must stay bit-exact, so
// widening them would be a format change, not an improvement.
type Bounds struct {
	Left   float32 // west longitude
	Bottom float32 // south latitude
	Right  float32 // east longitude
	Top    float32 // north latitude
}

// Bounds returns the geographic extent of t.
func (t Tile) Bounds() Bounds {
	n := math.Exp2(float64(t.Z))
	return Bounds{
		Left:   float32(float64(t.X)/n*360 - 180),
		Bottom: float32(rowLat(float64(t.Y+1), n)),
		Right:  float32(float64(t.X+1)/n*360 - 180),
		Top:    float32(rowLat(float64(t.Y), n)),
	}
}

// rowLat returns the latitude of the top edge of tile row y out of n.
func rowLat(y, n float64) float64 {
	r := math.Pi - 2*math.Pi*y/n
	return radToDeg * math.Atan(math.Sinh(r))
}

// Center returns the midpoint of the tile bounds, in the same single
// precision as Bounds.
func (t Tile) Center() (lat, lon float32) {
	b := t.Bounds()
	return (b.Top + b.Bottom) / 2, (b.Left + b.Right) / 2
}
