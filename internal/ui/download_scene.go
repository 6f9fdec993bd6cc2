package ui

import (
	"fmt"

	"github.com/drought-watch/drought-watch-cli/internal/copernicus"
	"github.com/paulmach/orb"
)

// DownloadScene handles the UI for fetching a Landsat scene from the
// Copernicus data space for a bounding box and date window.
func DownloadScene() {
	PrintWarning("COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET and COPERNICUS_TOKEN_URL must be set in the environment.")

	minLon, err := ReadFloat("Enter the minimum longitude: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	minLat, err := ReadFloat("Enter the minimum latitude: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	maxLon, err := ReadFloat("Enter the maximum longitude: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	maxLat, err := ReadFloat("Enter the maximum latitude: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	if minLon >= maxLon || minLat >= maxLat {
		PrintError("Invalid bounding box: min must be strictly below max on both axes.")
		return
	}

	startDate, endDate, err := ReadDateRange()
	if err != nil {
		PrintError(err.Error())
		return
	}

	name := ReadString("Enter a scene name (empty for a generated one): ")

	bbox := orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
	scenePath, err := copernicus.DownloadScene(bbox, startDate, endDate, name)
	if err != nil {
		PrintError(fmt.Sprintf("Error downloading scene: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Scene downloaded to %s", scenePath))
}
