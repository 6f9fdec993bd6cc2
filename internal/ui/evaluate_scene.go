package ui

import (
	"fmt"
	"strings"

	"github.com/drought-watch/drought-watch-cli/internal/delivery"
	"github.com/drought-watch/drought-watch-cli/internal/drought"
	"github.com/drought-watch/drought-watch-cli/internal/notification"
	"github.com/drought-watch/drought-watch-cli/internal/properties"
)

// EvaluateScene handles the UI for running the SDCI pipeline on one scene.
func EvaluateScene() {
	PrintWarning("- The scene must be a 4-band GeoTIFF (red, NIR, thermal 10, thermal 11) in the data/scenes folder.\n- Without a precipitation GeoTIFF the precipitation is fetched from the weather archive for the given date window.")

	scenePath, err := SelectScene()
	if err != nil {
		PrintError(err.Error())
		return
	}

	precipitationPath := ReadString("Enter the precipitation GeoTIFF path (empty to fetch from the weather archive): ")

	startDate, endDate, err := ReadDateRange()
	if err != nil {
		PrintError(err.Error())
		return
	}

	result, err := delivery.EvaluateScene(delivery.SceneInput{
		ScenePath:         scenePath,
		PrecipitationPath: precipitationPath,
		StartDate:         startDate,
		EndDate:           endDate,
		LSTUnit:           properties.LSTUnit(),
	})
	if err != nil {
		PrintError(fmt.Sprintf("Error evaluating scene: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Drought Watch\n\nError evaluating scene: %s", err.Error()))
		return
	}

	PrintSuccess(fmt.Sprintf("Successful analysis!\nResults located at: data/result/%s", result.SceneName))
	fmt.Printf("%s%s%s\n", ColorGreen, formatClassShares(result.ClassShares), ColorReset)
	notification.SendDiscordSuccessNotification(fmt.Sprintf("Drought Watch\n\nScene %s evaluated.\n%s", result.SceneName, formatClassShares(result.ClassShares)))
}

func formatClassShares(shares map[drought.Severity]float64) string {
	order := []drought.Severity{
		drought.SeverityExtreme,
		drought.SeveritySevere,
		drought.SeverityModerate,
		drought.SeverityMild,
		drought.SeverityNone,
	}
	lines := []string{"Drought class shares:"}
	for _, class := range order {
		share, ok := shares[class]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %.1f%%", class, share*100))
	}
	return strings.Join(lines, "\n")
}
