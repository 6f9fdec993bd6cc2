package raster

import (
	"math"

	"github.com/paulmach/orb"
)

// Raster is a 2D grid of float64 samples aligned to a geographic extent.
// Cells are stored row-major. A NaN cell means "no data"; every operation
// propagates NaN instead of failing, so one bad pixel never aborts a scene.
type Raster struct {
	Name       string
	Width      int
	Height     int
	Extent     orb.Bound
	Resolution float64
	CRS        string
	Cells      []float64
}

// NoData marks an invalid cell.
var NoData = math.NaN()

func New(name string, width, height int, extent orb.Bound, resolution float64, crs string) *Raster {
	return &Raster{
		Name:       name,
		Width:      width,
		Height:     height,
		Extent:     extent,
		Resolution: resolution,
		CRS:        crs,
		Cells:      make([]float64, width*height),
	}
}

// derive allocates a fresh raster with the same grid and metadata.
// All operations return derived rasters, inputs are never mutated.
func (r *Raster) derive() *Raster {
	out := New(r.Name, r.Width, r.Height, r.Extent, r.Resolution, r.CRS)
	return out
}

func (r *Raster) At(x, y int) float64 {
	return r.Cells[y*r.Width+x]
}

func (r *Raster) SetAt(x, y int, v float64) {
	r.Cells[y*r.Width+x] = v
}

// IsNoData reports whether v is the no-data marker.
func IsNoData(v float64) bool {
	return math.IsNaN(v)
}

func (r *Raster) sameShape(o *Raster) error {
	if r.Width != o.Width || r.Height != o.Height {
		return ShapeMismatchError{
			Width1: r.Width, Height1: r.Height,
			Width2: o.Width, Height2: o.Height,
		}
	}
	return nil
}

func (r *Raster) combine(o *Raster, op func(a, b float64) float64) (*Raster, error) {
	if err := r.sameShape(o); err != nil {
		return nil, err
	}
	out := r.derive()
	for i, a := range r.Cells {
		b := o.Cells[i]
		if IsNoData(a) || IsNoData(b) {
			out.Cells[i] = NoData
			continue
		}
		out.Cells[i] = op(a, b)
	}
	return out, nil
}

func (r *Raster) Add(o *Raster) (*Raster, error) {
	return r.combine(o, func(a, b float64) float64 { return a + b })
}

func (r *Raster) Sub(o *Raster) (*Raster, error) {
	return r.combine(o, func(a, b float64) float64 { return a - b })
}

func (r *Raster) Mul(o *Raster) (*Raster, error) {
	return r.combine(o, func(a, b float64) float64 { return a * b })
}

// Div divides cell-wise. A zero divisor yields no-data for that cell only;
// zero denominators are expected at the edges of dynamic ranges.
func (r *Raster) Div(o *Raster) (*Raster, error) {
	return r.combine(o, func(a, b float64) float64 {
		if b == 0 {
			return NoData
		}
		return a / b
	})
}

// Apply maps f over every valid cell. NaN cells stay NaN, and a non-finite
// result is stored as no-data to keep the per-cell failure policy.
func (r *Raster) Apply(f func(float64) float64) *Raster {
	out := r.derive()
	for i, v := range r.Cells {
		if IsNoData(v) {
			out.Cells[i] = NoData
			continue
		}
		w := f(v)
		if math.IsInf(w, 0) {
			w = NoData
		}
		out.Cells[i] = w
	}
	return out
}

func (r *Raster) AddScalar(v float64) *Raster {
	return r.Apply(func(a float64) float64 { return a + v })
}

func (r *Raster) SubScalar(v float64) *Raster {
	return r.Apply(func(a float64) float64 { return a - v })
}

func (r *Raster) MulScalar(v float64) *Raster {
	return r.Apply(func(a float64) float64 { return a * v })
}

func (r *Raster) DivScalar(v float64) *Raster {
	return r.Apply(func(a float64) float64 {
		if v == 0 {
			return NoData
		}
		return a / v
	})
}

// Log takes the natural logarithm cell-wise. Non-positive cells become
// no-data instead of failing the whole grid.
func (r *Raster) Log() *Raster {
	return r.Apply(func(a float64) float64 {
		if a <= 0 {
			return NoData
		}
		return math.Log(a)
	})
}

// Where sets every valid cell satisfying cond to v.
func (r *Raster) Where(cond func(float64) bool, v float64) *Raster {
	out := r.derive()
	for i, a := range r.Cells {
		if !IsNoData(a) && cond(a) {
			out.Cells[i] = v
			continue
		}
		out.Cells[i] = a
	}
	return out
}

// Min returns the smallest valid cell value. It fails with ErrEmptyRaster
// when every cell is no-data.
func (r *Raster) Min() (float64, error) {
	min := math.Inf(1)
	found := false
	for _, v := range r.Cells {
		if IsNoData(v) {
			continue
		}
		found = true
		if v < min {
			min = v
		}
	}
	if !found {
		return 0, ErrEmptyRaster
	}
	return min, nil
}

// Max returns the largest valid cell value, or ErrEmptyRaster.
func (r *Raster) Max() (float64, error) {
	max := math.Inf(-1)
	found := false
	for _, v := range r.Cells {
		if IsNoData(v) {
			continue
		}
		found = true
		if v > max {
			max = v
		}
	}
	if !found {
		return 0, ErrEmptyRaster
	}
	return max, nil
}

// ValidCells counts cells that carry data.
func (r *Raster) ValidCells() int {
	count := 0
	for _, v := range r.Cells {
		if !IsNoData(v) {
			count++
		}
	}
	return count
}
