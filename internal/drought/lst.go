package drought

import (
	"fmt"
	"math"

	"github.com/drought-watch/drought-watch-cli/internal/raster"
)

// Landsat 8 TIRS calibration and emissivity constants. Literature values,
// do not re-derive.
const (
	radianceMult = 0.0003342
	radianceAdd  = 0.1
	planckK1     = 774.89
	planckK2     = 1321.08

	pvNDVISoil  = 0.2 // NDVI at or below this is bare soil
	pvNDVIRange = 0.3 // full vegetation is reached at NDVI 0.5

	meanWavelength = 10.8 // µm, mean of TIRS bands 10 and 11
	planckRho      = 14380

	kelvinOffset = 273.15
)

// LSTConfig controls the emissivity model and output unit of CalculateLST.
// Unit "C" converts the result to Celsius; any other value leaves it in
// Kelvin. The unit is deliberately not validated.
type LSTConfig struct {
	PVCoeff  float64
	LSECoeff float64
	Unit     string
}

func DefaultLSTConfig() LSTConfig {
	return LSTConfig{PVCoeff: 0.004, LSECoeff: 0.986, Unit: "K"}
}

// brightnessTemperature converts raw thermal band counts to at-sensor
// brightness temperature in Kelvin via the inverse Planck form.
func brightnessTemperature(thermal *raster.Raster) *raster.Raster {
	radiance := thermal.MulScalar(radianceMult).AddScalar(radianceAdd)
	return radiance.Apply(func(rad float64) float64 {
		return planckK2 / math.Log(planckK1/rad+1)
	})
}

// CalculateLST derives land surface temperature from a red/NIR pair and two
// thermal bands: NDVI -> proportional vegetation -> emissivity -> mean
// brightness temperature -> emissivity-corrected surface temperature.
func CalculateLST(red, nir, thermal1, thermal2 *raster.Raster, cfg LSTConfig) (*raster.Raster, error) {
	ndvi, err := CalculateNDVI(red, nir)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate lst: %w", err)
	}

	// Proportional vegetation, clamped to [0,1]: NDVI below 0.2 is bare
	// soil, NDVI at or above 0.5 is full canopy.
	pv := ndvi.SubScalar(pvNDVISoil).DivScalar(pvNDVIRange)
	pv = pv.Where(func(v float64) bool { return v < 0 }, 0)
	pv = pv.Where(func(v float64) bool { return v > 1 }, 1)

	lse := pv.MulScalar(cfg.PVCoeff).AddScalar(cfg.LSECoeff)

	bt1 := brightnessTemperature(thermal1)
	bt2 := brightnessTemperature(thermal2)
	btSum, err := bt1.Add(bt2)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate lst: %w", err)
	}
	bt := btSum.MulScalar(0.5)

	// lst = bt / (1 + (lambda*bt/rho) * ln(lse)). A non-positive emissivity
	// falls out as no-data per the cell-wise log rule.
	correction, err := bt.MulScalar(meanWavelength / planckRho).Mul(lse.Log())
	if err != nil {
		return nil, fmt.Errorf("failed to calculate lst: %w", err)
	}
	lst, err := bt.Div(correction.AddScalar(1))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate lst: %w", err)
	}

	if cfg.Unit == "C" {
		lst = lst.SubScalar(kelvinOffset)
	}
	lst.Name = "lst"
	return lst, nil
}
