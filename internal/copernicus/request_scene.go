package copernicus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/drought-watch/drought-watch-cli/internal/cache"
	"github.com/drought-watch/drought-watch-cli/internal/properties"
	"github.com/paulmach/orb"
	"golang.org/x/oauth2/clientcredentials"
)

const processURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

// Band order of downloaded scenes. The SDCI pipeline expects exactly this
// layout: red, near infrared, then the two TIRS thermal bands.
const (
	BandRed      = 1 // B04
	BandNIR      = 2 // B05
	BandThermal1 = 3 // B10
	BandThermal2 = 4 // B11
)

// evalscript selects the Landsat 8-9 L2 bands the LST chain needs.
const evalscript = `
    //VERSION=3
    function setup() {
      return {
        input: ["B04", "B05", "B10", "B11"],
        output: {
          id: "default",
          bands: 4,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B04, sample.B05, sample.B10, sample.B11];
    }
  `

func calculatePixels(distance float64, resolution float64) int {
	pixels := distance * (111_000.0 / resolution)
	if pixels < 1 {
		return 1
	}
	return int(pixels)
}

// RequestScene downloads a 4-band GeoTIFF (red, NIR, thermal 10, thermal 11)
// for the bounding box and date window, most recent acquisition first.
// Responses are cached on disk keyed by bbox and window.
func RequestScene(bbox orb.Bound, startDate, endDate time.Time) ([]byte, error) {
	sceneCache := cache.NewFileCache[[]byte]("scene_cache")
	cacheKey := sceneCache.GenerateKey(
		bbox.Min[0], bbox.Min[1], bbox.Max[0], bbox.Max[1],
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"),
	)
	if data, ok := sceneCache.Get(cacheKey); ok {
		return data, nil
	}

	clientID := properties.CopernicusClientID()
	clientSecret := properties.CopernicusClientSecret()
	tokenURL := properties.CopernicusTokenURL()
	if clientID == "" || clientSecret == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	widthPixels := calculatePixels(bbox.Max[0]-bbox.Min[0], 30)
	heightPixels := calculatePixels(bbox.Max[1]-bbox.Min[1], 30)
	// Clamp to the allowed request range (1-2500)
	if widthPixels > 2500 {
		widthPixels = 2500
	}
	if heightPixels > 2500 {
		heightPixels = 2500
	}

	requestPayload := map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"bbox": []float64{bbox.Min[0], bbox.Min[1], bbox.Max[0], bbox.Max[1]},
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDate.Format(time.RFC3339),
							"to":   endDate.Format(time.RFC3339),
						},
					},
					"type": "landsat-ot-l2",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	httpClient := config.Client(context.Background())

	retries := 5
	var responseContent []byte
	for attempt := 1; attempt <= retries; attempt++ {
		response, err := httpClient.Post(processURL, "application/json", bytes.NewBuffer(requestBody))
		if err != nil {
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
			time.Sleep(5 * time.Second)
			continue
		}

		if response.StatusCode == http.StatusOK {
			responseContent, err = io.ReadAll(response.Body)
			response.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read response body: %v", err)
			}
			if err := sceneCache.Set(cacheKey, responseContent); err != nil {
				fmt.Printf("Failed to cache scene: %v\n", err)
			}
			return responseContent, nil
		}

		body, _ := io.ReadAll(response.Body)
		response.Body.Close()
		if response.StatusCode == http.StatusForbidden || response.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("unauthorized access, check your client ID and secret")
		}
		fmt.Printf("Attempt %d failed: %s\n", attempt, string(body))
		time.Sleep(5 * time.Second)
	}

	return nil, fmt.Errorf("failed to request scene after %d attempts", retries)
}

// DownloadScene fetches a scene and stores it under data/scenes as a GeoTIFF
// named after the date window.
func DownloadScene(bbox orb.Bound, startDate, endDate time.Time, name string) (string, error) {
	data, err := RequestScene(bbox, startDate, endDate)
	if err != nil {
		return "", err
	}

	sceneDir := filepath.Join(properties.RootPath(), "data", "scenes")
	if err := os.MkdirAll(sceneDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create scenes folder: %v", err)
	}

	if name == "" {
		name = fmt.Sprintf("scene_%s_%s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	}
	scenePath := filepath.Join(sceneDir, name+".tiff")
	if err := os.WriteFile(scenePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write scene file: %v", err)
	}

	return scenePath, nil
}
