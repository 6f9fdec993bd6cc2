package geotiff

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/paulmach/orb"
)

// nodataValue is written in place of NaN cells so downstream GIS tools see a
// proper nodata marker.
const nodataValue = -9999.0

// ReadRaster reads the first band of a GeoTIFF into a raster. The raster
// name defaults to the file name without extension.
func ReadRaster(path string) (*raster.Raster, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ReadBand(path, 1, name)
}

// ReadBand reads the 1-based band index of a GeoTIFF into a raster.
func ReadBand(path string, bandIndex int, name string) (*raster.Raster, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if bandIndex < 1 || bandIndex > len(bands) {
		return nil, fmt.Errorf("band %d out of range, %s has %d bands", bandIndex, path, len(bands))
	}
	band := bands[bandIndex-1]

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY

	geoTransform, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to get GeoTransform of %s: %w", path, err)
	}
	extent, resolution := boundFromGeoTransform(geoTransform, width, height)

	out := raster.New(name, width, height, extent, resolution, ds.Projection())
	if err := band.Read(0, 0, out.Cells, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster data from %s: %w", path, err)
	}

	// Map the file's nodata marker onto the NaN channel.
	if nodata, ok := band.NoData(); ok {
		for i, v := range out.Cells {
			if v == nodata {
				out.Cells[i] = raster.NoData
			}
		}
	}

	return out, nil
}

// WriteRaster writes a raster as a single-band Float64 GeoTIFF, overwriting
// any existing file and preserving extent, resolution and CRS.
func WriteRaster(r *raster.Raster, path string) error {
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float64, r.Width, r.Height)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform(geoTransformFromBound(r.Extent, r.Width, r.Height)); err != nil {
		return fmt.Errorf("failed to set GeoTransform on %s: %w", path, err)
	}
	if r.CRS != "" {
		if err := ds.SetProjection(r.CRS); err != nil {
			return fmt.Errorf("failed to set projection on %s: %w", path, err)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(nodataValue); err != nil {
		return fmt.Errorf("failed to set nodata on %s: %w", path, err)
	}

	cells := make([]float64, len(r.Cells))
	for i, v := range r.Cells {
		if raster.IsNoData(v) {
			cells[i] = nodataValue
			continue
		}
		cells[i] = v
	}
	if err := band.Write(0, 0, cells, r.Width, r.Height); err != nil {
		return fmt.Errorf("failed to write raster data to %s: %w", path, err)
	}

	return nil
}

// CellToLonLat converts pixel coordinates to the lon/lat of the cell center
// in the raster's own CRS. Cell steps are derived per axis from the extent,
// downloaded scenes are clamped per axis and need not have square cells.
func CellToLonLat(r *raster.Raster, x, y int) (float64, float64) {
	xStep := (r.Extent.Max[0] - r.Extent.Min[0]) / float64(r.Width)
	yStep := (r.Extent.Max[1] - r.Extent.Min[1]) / float64(r.Height)
	lon := r.Extent.Min[0] + xStep*(float64(x)+0.5)
	lat := r.Extent.Max[1] - yStep*(float64(y)+0.5)
	return lon, lat
}

func boundFromGeoTransform(gt [6]float64, width, height int) (orb.Bound, float64) {
	xMin := gt[0]
	yMax := gt[3]
	xMax := xMin + gt[1]*float64(width)
	yMin := yMax + gt[5]*float64(height)
	return orb.Bound{Min: orb.Point{xMin, yMin}, Max: orb.Point{xMax, yMax}}, math.Abs(gt[1])
}

// geoTransformFromBound derives the pixel sizes from the extent and grid
// dimensions so both axes of the extent survive a write unchanged.
func geoTransformFromBound(extent orb.Bound, width, height int) [6]float64 {
	xStep := (extent.Max[0] - extent.Min[0]) / float64(width)
	yStep := (extent.Max[1] - extent.Min[1]) / float64(height)
	return [6]float64{extent.Min[0], xStep, 0, extent.Max[1], 0, -yStep}
}
