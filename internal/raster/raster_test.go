package raster

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRaster(t *testing.T, width, height int, cells []float64) *Raster {
	t.Helper()
	require.Len(t, cells, width*height)
	r := New("test", width, height, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, 0.5, "")
	copy(r.Cells, cells)
	return r
}

func TestBinaryOps(t *testing.T) {
	a := newTestRaster(t, 2, 2, []float64{1, 2, 3, 4})
	b := newTestRaster(t, 2, 2, []float64{4, 3, 2, 1})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5, 5}, sum.Cells)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -1, 1, 3}, diff.Cells)

	prod, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6, 6, 4}, prod.Cells)

	quot, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 2.0 / 3.0, 1.5, 4}, quot.Cells)

	// inputs untouched
	assert.Equal(t, []float64{1, 2, 3, 4}, a.Cells)
	assert.Equal(t, []float64{4, 3, 2, 1}, b.Cells)
}

func TestShapeMismatch(t *testing.T) {
	a := newTestRaster(t, 2, 2, []float64{1, 2, 3, 4})
	b := newTestRaster(t, 2, 1, []float64{1, 2})

	_, err := a.Add(b)
	require.Error(t, err)
	var shapeErr ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Width1)
	assert.Equal(t, 2, shapeErr.Height1)
	assert.Equal(t, 1, shapeErr.Height2)
}

func TestNoDataPropagates(t *testing.T) {
	a := newTestRaster(t, 2, 1, []float64{NoData, 2})
	b := newTestRaster(t, 2, 1, []float64{1, NoData})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, IsNoData(sum.Cells[0]))
	assert.True(t, IsNoData(sum.Cells[1]))
}

func TestDivisionByZeroYieldsNoData(t *testing.T) {
	a := newTestRaster(t, 2, 1, []float64{1, 2})
	b := newTestRaster(t, 2, 1, []float64{0, 2})

	quot, err := a.Div(b)
	require.NoError(t, err)
	assert.True(t, IsNoData(quot.Cells[0]))
	assert.Equal(t, 1.0, quot.Cells[1])
}

func TestScalarOps(t *testing.T) {
	r := newTestRaster(t, 2, 1, []float64{2, NoData})

	assert.Equal(t, 5.0, r.AddScalar(3).Cells[0])
	assert.Equal(t, -1.0, r.SubScalar(3).Cells[0])
	assert.Equal(t, 6.0, r.MulScalar(3).Cells[0])
	assert.Equal(t, 1.0, r.DivScalar(2).Cells[0])
	assert.True(t, IsNoData(r.DivScalar(0).Cells[0]))
	assert.True(t, IsNoData(r.MulScalar(3).Cells[1]))
}

func TestLogNonPositiveYieldsNoData(t *testing.T) {
	r := newTestRaster(t, 4, 1, []float64{math.E, 0, -1, NoData})

	logged := r.Log()
	assert.InDelta(t, 1.0, logged.Cells[0], 1e-12)
	assert.True(t, IsNoData(logged.Cells[1]))
	assert.True(t, IsNoData(logged.Cells[2]))
	assert.True(t, IsNoData(logged.Cells[3]))
}

func TestApplyMasksNonFiniteResults(t *testing.T) {
	r := newTestRaster(t, 2, 1, []float64{0, 2})

	out := r.Apply(func(v float64) float64 { return 1 / v })
	assert.True(t, IsNoData(out.Cells[0]))
	assert.Equal(t, 0.5, out.Cells[1])
}

func TestWhere(t *testing.T) {
	r := newTestRaster(t, 4, 1, []float64{-0.5, 0.3, 1.5, NoData})

	clamped := r.Where(func(v float64) bool { return v < 0 }, 0)
	clamped = clamped.Where(func(v float64) bool { return v > 1 }, 1)
	assert.Equal(t, 0.0, clamped.Cells[0])
	assert.Equal(t, 0.3, clamped.Cells[1])
	assert.Equal(t, 1.0, clamped.Cells[2])
	assert.True(t, IsNoData(clamped.Cells[3]))
}

func TestMinMax(t *testing.T) {
	r := newTestRaster(t, 2, 2, []float64{3, NoData, -1, 7})

	min, err := r.Min()
	require.NoError(t, err)
	assert.Equal(t, -1.0, min)

	max, err := r.Max()
	require.NoError(t, err)
	assert.Equal(t, 7.0, max)
}

func TestMinMaxEmptyRaster(t *testing.T) {
	r := newTestRaster(t, 2, 1, []float64{NoData, NoData})

	_, err := r.Min()
	require.ErrorIs(t, err, ErrEmptyRaster)
	_, err = r.Max()
	require.ErrorIs(t, err, ErrEmptyRaster)
}

func TestMetadataCarriedThrough(t *testing.T) {
	r := New("ndvi", 2, 1, orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{11, 21}}, 0.25, "EPSG:4326")
	out := r.MulScalar(2)

	assert.Equal(t, r.Name, out.Name)
	assert.Equal(t, r.Extent, out.Extent)
	assert.Equal(t, r.Resolution, out.Resolution)
	assert.Equal(t, r.CRS, out.CRS)
}

func TestValidCells(t *testing.T) {
	r := newTestRaster(t, 2, 2, []float64{1, NoData, 3, NoData})
	assert.Equal(t, 2, r.ValidCells())
}
