package weather

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/drought-watch/drought-watch-cli/internal/cache"
	"github.com/drought-watch/drought-watch-cli/internal/geotiff"
	"github.com/drought-watch/drought-watch-cli/internal/raster"
)

const archiveURL = "https://archive-api.open-meteo.com/v1/archive"

// gridSamples is the number of sample points per axis used to approximate
// the precipitation field over a scene extent. The archive API serves one
// location per call, so the grid is kept coarse.
const gridSamples = 4

type DailyData struct {
	Time          []string  `json:"time"`
	Precipitation []float64 `json:"precipitation_sum"`
}

type WeatherResponse struct {
	Daily DailyData `json:"daily"`
}

// fetchAccumulatedPrecipitation returns the precipitation sum in mm at one
// location over the date window.
func fetchAccumulatedPrecipitation(latitude, longitude float64, startDate, endDate time.Time, retries int) (float64, error) {
	precipCache := cache.NewFileCache[float64]("weather_cache")
	if time.Since(endDate) < 7*24*time.Hour {
		// The archive backfills the most recent days, so windows ending near
		// now must be refetched instead of cached forever.
		precipCache = precipCache.WithTTL(24 * time.Hour)
	}
	cacheKey := precipCache.GenerateKey(
		fmt.Sprintf("%.4f", latitude), fmt.Sprintf("%.4f", longitude),
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"),
	)
	if total, ok := precipCache.Get(cacheKey); ok {
		return total, nil
	}

	params := fmt.Sprintf("?latitude=%f&longitude=%f&start_date=%s&end_date=%s&daily=precipitation_sum",
		latitude, longitude, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var attempt int
	for attempt < retries {
		resp, err := http.Get(archiveURL + params)
		if err != nil {
			fmt.Printf("Failed to retrieve weather data: %v. Retrying... (%d/%d)\n", err, attempt+1, retries)
			time.Sleep(10 * time.Second)
			attempt++
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			fmt.Printf("Failed to retrieve weather data: %d. Retrying... (%d/%d)\n", resp.StatusCode, attempt+1, retries)
			time.Sleep(10 * time.Second)
			attempt++
			continue
		}

		var weatherData WeatherResponse
		err = json.NewDecoder(resp.Body).Decode(&weatherData)
		resp.Body.Close()
		if err != nil {
			return 0, fmt.Errorf("failed to parse response: %v", err)
		}

		total := 0.0
		for _, p := range weatherData.Daily.Precipitation {
			total += p
		}

		if err := precipCache.Set(cacheKey, total); err != nil {
			fmt.Printf("Failed to cache weather data: %v\n", err)
		}
		return total, nil
	}

	return 0, fmt.Errorf("failed to retrieve weather data after %d attempts", retries)
}

// FetchPrecipitationRaster builds an accumulated-precipitation raster on the
// template's grid by sampling the open-meteo archive on a coarse lon/lat
// grid over the template extent and assigning each cell the value of its
// nearest sample. Used when no precipitation GeoTIFF is supplied.
func FetchPrecipitationRaster(template *raster.Raster, startDate, endDate time.Time) (*raster.Raster, error) {
	lonStep := (template.Extent.Max[0] - template.Extent.Min[0]) / float64(gridSamples)
	latStep := (template.Extent.Max[1] - template.Extent.Min[1]) / float64(gridSamples)

	samples := make([][]float64, gridSamples)
	for i := range samples {
		samples[i] = make([]float64, gridSamples)
		for j := range samples[i] {
			lat := template.Extent.Min[1] + latStep*(float64(i)+0.5)
			lon := template.Extent.Min[0] + lonStep*(float64(j)+0.5)
			total, err := fetchAccumulatedPrecipitation(lat, lon, startDate, endDate, 5)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch precipitation at %.4f,%.4f: %w", lat, lon, err)
			}
			samples[i][j] = total
		}
	}

	out := raster.New("precipitation", template.Width, template.Height, template.Extent, template.Resolution, template.CRS)
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			lon, lat := geotiff.CellToLonLat(out, x, y)
			i := sampleIndex(lat, template.Extent.Min[1], latStep)
			j := sampleIndex(lon, template.Extent.Min[0], lonStep)
			out.SetAt(x, y, samples[i][j])
		}
	}

	return out, nil
}

func sampleIndex(coord, min, step float64) int {
	if step == 0 {
		return 0
	}
	idx := int((coord - min) / step)
	if idx < 0 {
		idx = 0
	}
	if idx >= gridSamples {
		idx = gridSamples - 1
	}
	return idx
}
