package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/drought-watch/drought-watch-cli/internal/properties"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadDate reads a date from stdin with validation
func ReadDate(prompt string) (time.Time, error) {
	input := ReadString(prompt)
	if input == "today" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s. Please use YYYY-MM-DD", input)
	}
	return date, nil
}

// ReadPositiveInt reads a positive integer from stdin
func ReadPositiveInt(prompt string) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid number: %s. Please enter a positive integer", input)
	}

	return value, nil
}

// ReadFloat reads a float from stdin
func ReadFloat(prompt string) (float64, error) {
	input := ReadString(prompt)
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	return value, nil
}

// ReadDateRange reads an end date and number of days and derives the start
// date, used for the precipitation accumulation window.
func ReadDateRange() (time.Time, time.Time, error) {
	endDate, err := ReadDate("Enter the end date (YYYY-MM-DD): ")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	days, err := ReadPositiveInt("Enter number of days: ")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startDate := endDate.AddDate(0, 0, -days)
	return startDate, endDate, nil
}

// SelectScene lists the tiffs in data/scenes and returns the chosen path.
func SelectScene() (string, error) {
	sceneDir := fmt.Sprintf("%s/data/scenes", properties.RootPath())
	entries, err := os.ReadDir(sceneDir)
	if err != nil {
		return "", fmt.Errorf("error reading scenes folder: %s", err.Error())
	}

	scenes := []string{}
	for _, entry := range entries {
		lower := strings.ToLower(entry.Name())
		if strings.HasSuffix(lower, ".tif") || strings.HasSuffix(lower, ".tiff") {
			scenes = append(scenes, entry.Name())
		}
	}
	if len(scenes) == 0 {
		return "", fmt.Errorf("no scenes found in %s", sceneDir)
	}

	fmt.Printf("%s\nAvailable scenes:%s\n", ColorGreen, ColorReset)
	for i, scene := range scenes {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, scene, ColorReset)
	}

	choice, err := ReadPositiveInt("Enter the number of the scene you want to use: ")
	if err != nil {
		return "", err
	}
	if choice < 1 || choice > len(scenes) {
		return "", fmt.Errorf("invalid choice, pick a number between 1 and %d", len(scenes))
	}

	return fmt.Sprintf("%s/%s", sceneDir, scenes[choice-1]), nil
}
