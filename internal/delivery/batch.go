package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

const batchWorkers = 4

// BatchResult pairs a scene with either its evaluation result or the error
// that stopped it. Structural errors never abort the rest of the batch.
type BatchResult struct {
	ScenePath string
	Result    *SceneResult
	Err       error
}

// EvaluateScenes runs EvaluateScene over every .tif/.tiff in sceneDir using
// a worker pool. Precipitation falls back to the weather archive over
// [startDate, endDate] for every scene.
func EvaluateScenes(sceneDir string, startDate, endDate time.Time, lstUnit string) ([]BatchResult, error) {
	entries, err := os.ReadDir(sceneDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene folder: %v", err)
	}

	scenePaths := []string{}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".tif" || ext == ".tiff" {
			scenePaths = append(scenePaths, filepath.Join(sceneDir, entry.Name()))
		}
	}
	if len(scenePaths) == 0 {
		return nil, fmt.Errorf("no tiff scenes found in %s", sceneDir)
	}

	progressBar := progressbar.Default(int64(len(scenePaths)), "Evaluating scenes")
	wp := workerpool.New(batchWorkers)
	var mu sync.Mutex
	results := make([]BatchResult, 0, len(scenePaths))

	for _, scenePath := range scenePaths {
		scenePath := scenePath
		wp.Submit(func() {
			result, err := EvaluateScene(SceneInput{
				ScenePath: scenePath,
				StartDate: startDate,
				EndDate:   endDate,
				LSTUnit:   lstUnit,
			})
			mu.Lock()
			results = append(results, BatchResult{ScenePath: scenePath, Result: result, Err: err})
			mu.Unlock()
			progressBar.Add(1)
		})
	}
	wp.StopWait()
	progressBar.Finish()

	return results, nil
}
