package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drought-watch/drought-watch-cli/internal/dataset"
	"github.com/drought-watch/drought-watch-cli/internal/geotiff"
)

// CreateIndexRasters writes every derived index as a GeoTIFF under
// <resultDir>/rasters, named after the index.
func CreateIndexRasters(indices dataset.SceneIndices, resultDir string) ([]string, error) {
	rasterDir := filepath.Join(resultDir, "rasters")
	if err := os.MkdirAll(rasterDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %v", err)
	}

	paths := []string{}
	for _, r := range indices.All() {
		outputPath := filepath.Join(rasterDir, r.Name+".tiff")
		if err := geotiff.WriteRaster(r, outputPath); err != nil {
			return nil, fmt.Errorf("failed to write %s raster: %w", r.Name, err)
		}
		paths = append(paths, outputPath)
	}

	return paths, nil
}
