package delivery

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/drought-watch/drought-watch-cli/internal/copernicus"
	"github.com/drought-watch/drought-watch-cli/internal/dataset"
	"github.com/drought-watch/drought-watch-cli/internal/drought"
	"github.com/drought-watch/drought-watch-cli/internal/geotiff"
	"github.com/drought-watch/drought-watch-cli/internal/properties"
	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/drought-watch/drought-watch-cli/internal/weather"
	"github.com/drought-watch/drought-watch-cli/output"
)

// GDAL datasets are not safe to share across goroutines, so batch workers
// serialize their reads.
var gdalMu sync.Mutex

// SceneInput describes one scene evaluation. ScenePath must point at a
// 4-band GeoTIFF laid out red, NIR, thermal 10, thermal 11. When
// PrecipitationPath is empty the precipitation raster is fetched from the
// weather archive over [StartDate, EndDate].
type SceneInput struct {
	ScenePath         string
	PrecipitationPath string
	StartDate         time.Time
	EndDate           time.Time
	LSTUnit           string
}

type SceneResult struct {
	SceneName   string
	Indices     dataset.SceneIndices
	ClassShares map[drought.Severity]float64
	OutputPaths []string
}

func sceneName(scenePath string) string {
	return strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
}

func readSceneBands(scenePath string) (red, nir, thermal1, thermal2 *raster.Raster, err error) {
	gdalMu.Lock()
	defer gdalMu.Unlock()

	red, err = geotiff.ReadBand(scenePath, copernicus.BandRed, "red")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	nir, err = geotiff.ReadBand(scenePath, copernicus.BandNIR, "nir")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	thermal1, err = geotiff.ReadBand(scenePath, copernicus.BandThermal1, "thermal1")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	thermal2, err = geotiff.ReadBand(scenePath, copernicus.BandThermal2, "thermal2")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return red, nir, thermal1, thermal2, nil
}

// EvaluateScene runs the full SDCI pipeline for one scene and writes the
// derived rasters, rendered maps, CSV report and drought GeoJSON under
// data/result/<scene>.
func EvaluateScene(input SceneInput) (*SceneResult, error) {
	start := time.Now()
	name := sceneName(input.ScenePath)

	red, nir, thermal1, thermal2, err := readSceneBands(input.ScenePath)
	if err != nil {
		return nil, err
	}

	var precipitation *raster.Raster
	if input.PrecipitationPath != "" {
		gdalMu.Lock()
		precipitation, err = geotiff.ReadRaster(input.PrecipitationPath)
		gdalMu.Unlock()
		if err != nil {
			return nil, err
		}
		precipitation.Name = "precipitation"
	} else {
		precipitation, err = weather.FetchPrecipitationRaster(red, input.StartDate, input.EndDate)
		if err != nil {
			return nil, err
		}
	}

	ndvi, err := drought.CalculateNDVI(red, nir)
	if err != nil {
		return nil, err
	}

	lstCfg := drought.DefaultLSTConfig()
	if input.LSTUnit != "" {
		lstCfg.Unit = input.LSTUnit
	}
	lst, err := drought.CalculateLST(red, nir, thermal1, thermal2, lstCfg)
	if err != nil {
		return nil, err
	}

	vci, err := drought.CalculateVCI(ndvi)
	if err != nil {
		return nil, err
	}
	tci, err := drought.CalculateTCI(lst)
	if err != nil {
		return nil, err
	}
	pci, err := drought.CalculatePrecipitationIndex(precipitation)
	if err != nil {
		return nil, err
	}
	sdci, err := drought.CalculateSDCI(vci, tci, pci)
	if err != nil {
		return nil, err
	}

	indices := dataset.SceneIndices{NDVI: ndvi, LST: lst, VCI: vci, TCI: tci, PCI: pci, SDCI: sdci}

	records, err := dataset.BuildPixelDataset(indices)
	if err != nil {
		return nil, err
	}
	stats := dataset.ComputeStats(indices.All()...)

	resultDir := filepath.Join(properties.RootPath(), "data", "result", name)
	outputPaths := []string{}

	gdalMu.Lock()
	rasterPaths, err := output.CreateIndexRasters(indices, resultDir)
	gdalMu.Unlock()
	if err != nil {
		return nil, err
	}
	outputPaths = append(outputPaths, rasterPaths...)

	imagePaths, err := output.CreateIndexImages(indices, resultDir)
	if err != nil {
		return nil, err
	}
	outputPaths = append(outputPaths, imagePaths...)

	reportPaths, err := output.CreateSceneReport(records, stats, resultDir)
	if err != nil {
		return nil, err
	}
	outputPaths = append(outputPaths, reportPaths...)

	geojsonPath, err := output.CreateDroughtGeoJSON(records, resultDir)
	if err != nil {
		return nil, err
	}
	outputPaths = append(outputPaths, geojsonPath)

	fmt.Printf("Scene %s evaluated in %v\n", name, time.Since(start))
	return &SceneResult{
		SceneName:   name,
		Indices:     indices,
		ClassShares: drought.ClassShares(sdci),
		OutputPaths: outputPaths,
	}, nil
}
