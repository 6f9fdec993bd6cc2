package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drought-watch/drought-watch-cli/internal/dataset"
	"github.com/drought-watch/drought-watch-cli/internal/render"
)

// CreateIndexImages renders every derived index as a PNG map under
// <resultDir>/images. The SDCI map inverts the default ramp so that dry
// areas show red on both SDCI and the raw condition indices.
func CreateIndexImages(indices dataset.SceneIndices, resultDir string) ([]string, error) {
	imageDir := filepath.Join(resultDir, "images")
	if err := os.MkdirAll(imageDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create result folder: %v", err)
	}

	imagePaths := []string{}
	for _, r := range indices.All() {
		outputPath := filepath.Join(imageDir, r.Name+".png")
		opts := render.Options{}
		if r.Name == "sdci" || r.Name == "vci" || r.Name == "tci" || r.Name == "pci" {
			// Condition indices read low = dry, so red sits at the bottom.
			stops := render.DefaultStops()
			stops[0], stops[2] = stops[2], stops[0]
			opts.Stops = stops
		}
		if err := render.Render(r, outputPath, opts); err != nil {
			return nil, fmt.Errorf("failed to render %s image: %w", r.Name, err)
		}
		imagePaths = append(imagePaths, outputPath)
	}

	return imagePaths, nil
}
