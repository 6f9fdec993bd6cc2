package ui

import (
	"fmt"

	"github.com/drought-watch/drought-watch-cli/internal/delivery"
	"github.com/drought-watch/drought-watch-cli/internal/notification"
	"github.com/drought-watch/drought-watch-cli/internal/properties"
)

// BatchEvaluate handles the UI for evaluating every scene in data/scenes.
func BatchEvaluate() {
	sceneDir := fmt.Sprintf("%s/data/scenes", properties.RootPath())
	PrintWarning(fmt.Sprintf("All tiff scenes in %s will be evaluated.", sceneDir))

	startDate, endDate, err := ReadDateRange()
	if err != nil {
		PrintError(err.Error())
		return
	}

	results, err := delivery.EvaluateScenes(sceneDir, startDate, endDate, properties.LSTUnit())
	if err != nil {
		PrintError(fmt.Sprintf("Error evaluating scenes: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Drought Watch\n\nError evaluating scenes: %s", err.Error()))
		return
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			PrintError(fmt.Sprintf("%s: %s", result.ScenePath, result.Err.Error()))
		}
	}

	PrintSuccess(fmt.Sprintf("Batch finished: %d scenes evaluated, %d failed.", len(results)-failed, failed))
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Drought Watch\n\nBatch finished: %d scenes evaluated, %d failed.", len(results)-failed, failed))
}
