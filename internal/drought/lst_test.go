package drought

import (
	"testing"

	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrightnessTemperature(t *testing.T) {
	thermal := uniformRaster(t, 2, 2, 1000)

	bt := brightnessTemperature(thermal)
	// radiance = 1000*0.0003342 + 0.1 = 0.4342
	// bt = 1321.08 / ln(774.89/0.4342 + 1)
	for _, v := range bt.Cells {
		assert.InDelta(t, 176.43732620793466, v, 1e-3)
	}
}

func TestCalculateLST(t *testing.T) {
	// NDVI is uniformly 0.5, so pv clamps to 1 and lse = 0.004*1 + 0.986.
	red := uniformRaster(t, 2, 2, 0.1)
	nir := uniformRaster(t, 2, 2, 0.3)
	thermal1 := uniformRaster(t, 2, 2, 1000)
	thermal2 := uniformRaster(t, 2, 2, 1000)

	lst, err := CalculateLST(red, nir, thermal1, thermal2, DefaultLSTConfig())
	require.NoError(t, err)
	assert.Equal(t, "lst", lst.Name)
	for _, v := range lst.Cells {
		assert.InDelta(t, 176.67261712069714, v, 1e-3)
	}
}

func TestCalculateLSTAveragesThermalBands(t *testing.T) {
	red := uniformRaster(t, 1, 1, 0.1)
	nir := uniformRaster(t, 1, 1, 0.3)
	thermal1 := uniformRaster(t, 1, 1, 1000)
	thermal2 := uniformRaster(t, 1, 1, 2000)

	lst, err := CalculateLST(red, nir, thermal1, thermal2, DefaultLSTConfig())
	require.NoError(t, err)
	assert.InDelta(t, 183.96675807916884, lst.Cells[0], 1e-3)
}

func TestCalculateLSTUnitConversionLaw(t *testing.T) {
	red := newTestRaster(t, 2, 2, []float64{0.1, 0.2, 0.15, 0.05})
	nir := newTestRaster(t, 2, 2, []float64{0.3, 0.5, 0.45, 0.2})
	thermal1 := newTestRaster(t, 2, 2, []float64{1000, 1500, 2000, 2500})
	thermal2 := newTestRaster(t, 2, 2, []float64{1100, 1600, 2100, 2600})

	kelvinCfg := DefaultLSTConfig()
	celsiusCfg := DefaultLSTConfig()
	celsiusCfg.Unit = "C"

	kelvin, err := CalculateLST(red, nir, thermal1, thermal2, kelvinCfg)
	require.NoError(t, err)
	celsius, err := CalculateLST(red, nir, thermal1, thermal2, celsiusCfg)
	require.NoError(t, err)

	for i := range kelvin.Cells {
		assert.InDelta(t, kelvin.Cells[i]-273.15, celsius.Cells[i], 1e-9)
	}
}

func TestCalculateLSTUnrecognizedUnitMeansKelvin(t *testing.T) {
	red := uniformRaster(t, 1, 1, 0.1)
	nir := uniformRaster(t, 1, 1, 0.3)
	thermal := uniformRaster(t, 1, 1, 1000)

	kelvinCfg := DefaultLSTConfig()
	weirdCfg := DefaultLSTConfig()
	weirdCfg.Unit = "fahrenheit"

	kelvin, err := CalculateLST(red, nir, thermal, thermal, kelvinCfg)
	require.NoError(t, err)
	weird, err := CalculateLST(red, nir, thermal, thermal, weirdCfg)
	require.NoError(t, err)
	assert.Equal(t, kelvin.Cells, weird.Cells)
}

func TestCalculateLSTPathologicalEmissivity(t *testing.T) {
	// A non-positive emissivity must degrade to no-data cells, not fail.
	red := uniformRaster(t, 2, 1, 0.1)
	nir := uniformRaster(t, 2, 1, 0.3)
	thermal := uniformRaster(t, 2, 1, 1000)

	cfg := LSTConfig{PVCoeff: 0, LSECoeff: -1, Unit: "K"}
	lst, err := CalculateLST(red, nir, thermal, thermal, cfg)
	require.NoError(t, err)
	for _, v := range lst.Cells {
		assert.True(t, raster.IsNoData(v))
	}
}

func TestCalculateLSTPropagatesNoData(t *testing.T) {
	red := newTestRaster(t, 2, 1, []float64{0.1, raster.NoData})
	nir := newTestRaster(t, 2, 1, []float64{0.3, 0.3})
	thermal := uniformRaster(t, 2, 1, 1000)

	lst, err := CalculateLST(red, nir, thermal, thermal, DefaultLSTConfig())
	require.NoError(t, err)
	assert.False(t, raster.IsNoData(lst.Cells[0]))
	assert.True(t, raster.IsNoData(lst.Cells[1]))
}

func TestCalculateLSTShapeMismatch(t *testing.T) {
	red := uniformRaster(t, 2, 2, 0.1)
	nir := uniformRaster(t, 2, 2, 0.3)
	thermal1 := uniformRaster(t, 2, 2, 1000)
	thermal2 := uniformRaster(t, 3, 2, 1000)

	_, err := CalculateLST(red, nir, thermal1, thermal2, DefaultLSTConfig())
	require.Error(t, err)
	var shapeErr raster.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
}
