package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles in the tileset.
// It yields tiles and their data. Iteration may panic on unrecoverable errors.
func IterTiles(r Visitor) iter.Seq2[Tile, []byte] {
	return func(yield func(Tile, []byte) bool) {
		err := r.VisitTiles(func(t Tile, tileData []byte) error {
			if !yield(t, tileData) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

func IterLocations(r LocationVisitor) iter.Seq2[Tile, Location] {
	return func(yield func(Tile, Location) bool) {
		err := r.VisitLocations(func(t Tile, location Location) error {
			if !yield(t, location) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
