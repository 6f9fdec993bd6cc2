package drought

import (
	"fmt"

	"github.com/drought-watch/drought-watch-cli/internal/raster"
)

// SDCI blend weights. Temperature dominates the composite, then
// precipitation, then vegetation.
const (
	SDCIWeightTCI = 0.5
	SDCIWeightPCI = 0.3
	SDCIWeightVCI = 0.2
)

// NormalizeToPercentage rescales a raster to [0,100] using its own min/max
// over valid cells. It fails with raster.ErrDegenerateRange when the input
// has no spatial variation.
func NormalizeToPercentage(r *raster.Raster) (*raster.Raster, error) {
	min, err := r.Min()
	if err != nil {
		return nil, err
	}
	max, err := r.Max()
	if err != nil {
		return nil, err
	}
	if max == min {
		return nil, raster.ErrDegenerateRange
	}
	return r.SubScalar(min).MulScalar(100 / (max - min)), nil
}

// CalculateNDVI computes (nir-red)/(nir+red) cell-wise. Values outside the
// theoretical [-1,1] range pass through unchanged so callers can treat them
// as a data quality signal.
func CalculateNDVI(red, nir *raster.Raster) (*raster.Raster, error) {
	num, err := nir.Sub(red)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ndvi: %w", err)
	}
	den, err := nir.Add(red)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ndvi: %w", err)
	}
	ndvi, err := num.Div(den)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate ndvi: %w", err)
	}
	ndvi.Name = "ndvi"
	return ndvi, nil
}

// CalculateVCI is the Vegetation Condition Index: min-max normalized NDVI,
// low vegetation maps to low VCI.
func CalculateVCI(ndvi *raster.Raster) (*raster.Raster, error) {
	vci, err := NormalizeToPercentage(ndvi)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate vci: %w", err)
	}
	vci.Name = "vci"
	return vci, nil
}

// CalculateTCI is the Temperature Condition Index. Polarity is inverted:
// hot cells map to low TCI, cold cells to high TCI.
func CalculateTCI(lst *raster.Raster) (*raster.Raster, error) {
	min, err := lst.Min()
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tci: %w", err)
	}
	max, err := lst.Max()
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tci: %w", err)
	}
	if max == min {
		return nil, raster.ErrDegenerateRange
	}
	tci := lst.MulScalar(-1).AddScalar(max).MulScalar(100 / (max - min))
	tci.Name = "tci"
	return tci, nil
}

// CalculatePrecipitationIndex is the Precipitation Condition Index:
// min-max normalized accumulated precipitation.
func CalculatePrecipitationIndex(precipitation *raster.Raster) (*raster.Raster, error) {
	pci, err := NormalizeToPercentage(precipitation)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate pci: %w", err)
	}
	pci.Name = "pci"
	return pci, nil
}

// CalculateSDCI blends the three condition indices into the Standardized
// Drought Condition Index: 0.5*tci + 0.3*pci + 0.2*vci. All three rasters
// must share the same grid.
func CalculateSDCI(vci, tci, pci *raster.Raster) (*raster.Raster, error) {
	weighted, err := tci.MulScalar(SDCIWeightTCI).Add(pci.MulScalar(SDCIWeightPCI))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate sdci: %w", err)
	}
	sdci, err := weighted.Add(vci.MulScalar(SDCIWeightVCI))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate sdci: %w", err)
	}
	sdci.Name = "sdci"
	return sdci, nil
}
