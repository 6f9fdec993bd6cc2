package raster

import (
	"errors"
	"fmt"
)

// ErrEmptyRaster is returned by global reductions over a raster whose cells
// are all no-data.
var ErrEmptyRaster = errors.New("raster has no valid cells")

// ErrDegenerateRange is returned when a normalization input has no dynamic
// range (max == min over valid cells), which happens on uniform regions.
var ErrDegenerateRange = errors.New("raster has zero dynamic range")

// ShapeMismatchError is returned when operands of a cell-wise operation are
// not on the same grid. Inputs must already be co-registered, the pipeline
// never resamples.
type ShapeMismatchError struct {
	Width1, Height1 int
	Width2, Height2 int
}

func (e ShapeMismatchError) Error() string {
	return fmt.Sprintf("raster shapes do not match: %dx%d vs %dx%d", e.Width1, e.Height1, e.Width2, e.Height2)
}
