package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/drought-watch/drought-watch-cli/internal/properties"
)

// ListScenes prints the tiff scenes available under data/scenes.
func ListScenes() {
	sceneDir := fmt.Sprintf("%s/data/scenes", properties.RootPath())
	entries, err := os.ReadDir(sceneDir)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading scenes folder: %s", err.Error()))
		return
	}

	PrintWarning("To add a new scene, place a 4-band GeoTIFF (red, NIR, thermal 10, thermal 11) in the 'data/scenes' folder, or use the download option.")

	fmt.Printf("\n%sAvailable scenes:%s\n", ColorGreen, ColorReset)
	found := false
	for _, entry := range entries {
		lower := strings.ToLower(entry.Name())
		if strings.HasSuffix(lower, ".tif") || strings.HasSuffix(lower, ".tiff") {
			fmt.Printf("%s- %s%s\n", ColorGreen, entry.Name(), ColorReset)
			found = true
		}
	}
	if !found {
		PrintError("No scenes found.")
	}
}
