package dataset

import (
	"fmt"

	"github.com/drought-watch/drought-watch-cli/internal/drought"
	"github.com/drought-watch/drought-watch-cli/internal/geotiff"
	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/schollz/progressbar/v3"
)

// PixelRecord is one row of the per-pixel scene export.
type PixelRecord struct {
	X         int     `csv:"x"`
	Y         int     `csv:"y"`
	Longitude float64 `csv:"longitude"`
	Latitude  float64 `csv:"latitude"`
	NDVI      float64 `csv:"ndvi"`
	LST       float64 `csv:"lst"`
	VCI       float64 `csv:"vci"`
	TCI       float64 `csv:"tci"`
	PCI       float64 `csv:"pci"`
	SDCI      float64 `csv:"sdci"`
	Severity  string  `csv:"severity"`
}

// SceneIndices bundles the derived rasters of one scene.
type SceneIndices struct {
	NDVI *raster.Raster
	LST  *raster.Raster
	VCI  *raster.Raster
	TCI  *raster.Raster
	PCI  *raster.Raster
	SDCI *raster.Raster
}

// All returns the indices in a stable export order.
func (s SceneIndices) All() []*raster.Raster {
	return []*raster.Raster{s.NDVI, s.LST, s.VCI, s.TCI, s.PCI, s.SDCI}
}

// BuildPixelDataset flattens the scene indices into per-pixel records.
// Pixels without a composite SDCI value are skipped.
func BuildPixelDataset(indices SceneIndices) ([]PixelRecord, error) {
	sdci := indices.SDCI
	for _, r := range indices.All() {
		if r.Width != sdci.Width || r.Height != sdci.Height {
			return nil, fmt.Errorf("failed to build pixel dataset: %w", raster.ShapeMismatchError{
				Width1: sdci.Width, Height1: sdci.Height,
				Width2: r.Width, Height2: r.Height,
			})
		}
	}

	records := make([]PixelRecord, 0, sdci.Width*sdci.Height)
	progressBar := progressbar.Default(int64(sdci.Width*sdci.Height), "Building pixel dataset")
	for y := 0; y < sdci.Height; y++ {
		for x := 0; x < sdci.Width; x++ {
			progressBar.Add(1)
			value := sdci.At(x, y)
			if raster.IsNoData(value) {
				continue
			}
			lon, lat := geotiff.CellToLonLat(sdci, x, y)
			records = append(records, PixelRecord{
				X:         x,
				Y:         y,
				Longitude: lon,
				Latitude:  lat,
				NDVI:      indices.NDVI.At(x, y),
				LST:       indices.LST.At(x, y),
				VCI:       indices.VCI.At(x, y),
				TCI:       indices.TCI.At(x, y),
				PCI:       indices.PCI.At(x, y),
				SDCI:      value,
				Severity:  string(drought.ClassifySDCI(value)),
			})
		}
	}
	progressBar.Finish()

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid pixels available to build the dataset")
	}
	return records, nil
}
