package main

import (
	"fmt"
	"os"
	"time"

	"github.com/drought-watch/drought-watch-cli/internal/copernicus"
	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
)

// Manual check for the Copernicus download flow: fetches a small Landsat
// window over central Spain for the last 30 days and prints the scene path.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	bbox := orb.Bound{
		Min: orb.Point{-4.0, 39.5},
		Max: orb.Point{-3.5, 40.0},
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	scenePath, err := copernicus.DownloadScene(bbox, startDate, endDate, "test_scene")
	if err != nil {
		fmt.Printf("Download failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene downloaded to %s\n", scenePath)
}
