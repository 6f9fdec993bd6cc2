package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drought-watch/drought-watch-cli/internal/dataset"
	"github.com/gocarina/gocsv"
)

// CreateSceneReport writes the per-pixel records and the per-index summary
// stats as CSV files under the result directory.
func CreateSceneReport(records []dataset.PixelRecord, stats []dataset.IndexStats, resultDir string) ([]string, error) {
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %v", err)
	}

	pixelsPath := filepath.Join(resultDir, "pixels.csv")
	pixelsFile, err := os.Create(pixelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create pixels CSV: %v", err)
	}
	defer pixelsFile.Close()
	if err := gocsv.MarshalFile(&records, pixelsFile); err != nil {
		return nil, fmt.Errorf("failed to marshal pixels CSV: %v", err)
	}

	statsPath := filepath.Join(resultDir, "stats.csv")
	statsFile, err := os.Create(statsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats CSV: %v", err)
	}
	defer statsFile.Close()
	if err := gocsv.MarshalFile(&stats, statsFile); err != nil {
		return nil, fmt.Errorf("failed to marshal stats CSV: %v", err)
	}

	return []string{pixelsPath, statsPath}, nil
}
