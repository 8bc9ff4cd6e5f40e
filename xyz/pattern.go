// Package xyz provides API for reading and writing tiles in XYZ directory format,
// where tiles are stored as individual files with paths like "/z/x/y.ext".
package xyz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-tilegrid/tile"
)

var ErrInvalidPattern = errors.New("tilegrid: invalid file pattern")

func validatePattern(pattern string) error {
	for _, p := range []string{"{x}", "{y}", "{z}"} {
		if !strings.Contains(pattern, p) {
			return fmt.Errorf("%w: placeholder %v not found", ErrInvalidPattern, p)
		}
	}
	return nil
}

func formatPattern(pattern string, t tile.Tile) string {
	result := pattern
	result = strings.ReplaceAll(result, "{x}", strconv.FormatInt(t.X, 10))
	result = strings.ReplaceAll(result, "{y}", strconv.FormatInt(t.Y, 10))
	result = strings.ReplaceAll(result, "{z}", strconv.FormatInt(t.Z, 10))
	return result
}
