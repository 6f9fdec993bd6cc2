package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drought-watch/drought-watch-cli/internal/dataset"
	"github.com/drought-watch/drought-watch-cli/internal/drought"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// CreateDroughtGeoJSON exports the pixels in drought (extreme, severe or
// moderate SDCI classes) as a point FeatureCollection for GIS overlays.
func CreateDroughtGeoJSON(records []dataset.PixelRecord, resultDir string) (string, error) {
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create result folder: %v", err)
	}

	fc := geojson.NewFeatureCollection()
	for _, record := range records {
		severity := drought.Severity(record.Severity)
		if severity != drought.SeverityExtreme && severity != drought.SeveritySevere && severity != drought.SeverityModerate {
			continue
		}
		feature := geojson.NewFeature(orb.Point{record.Longitude, record.Latitude})
		feature.Properties["sdci"] = record.SDCI
		feature.Properties["severity"] = record.Severity
		fc.Append(feature)
	}

	outputPath := filepath.Join(resultDir, "drought.geojson")
	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create GeoJSON file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fc); err != nil {
		return "", fmt.Errorf("failed to encode GeoJSON: %v", err)
	}

	return outputPath, nil
}
