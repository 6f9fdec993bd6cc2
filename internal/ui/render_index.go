package ui

import (
	"fmt"
	"strings"

	"github.com/drought-watch/drought-watch-cli/internal/geotiff"
	"github.com/drought-watch/drought-watch-cli/internal/render"
)

// RenderIndex handles the UI for rendering an arbitrary single-band GeoTIFF
// as a PNG map.
func RenderIndex() {
	path := ReadString("Enter the GeoTIFF path: ")
	if path == "" {
		PrintError("Path cannot be empty.")
		return
	}

	r, err := geotiff.ReadRaster(path)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading raster: %s", err.Error()))
		return
	}

	title := ReadString("Enter a title (empty to use the raster name): ")

	outputPath := strings.TrimSuffix(path, ".tiff")
	outputPath = strings.TrimSuffix(outputPath, ".tif") + ".png"

	if err := render.Render(r, outputPath, render.Options{Title: title}); err != nil {
		PrintError(fmt.Sprintf("Error rendering map: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Map rendered to %s", outputPath))
}
