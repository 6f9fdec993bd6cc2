package drought

import "github.com/drought-watch/drought-watch-cli/internal/raster"

// Severity buckets for the SDCI percentage scale. Thresholds follow the
// usual condition-index quintiles: lower SDCI means drier conditions.
type Severity string

const (
	SeverityExtreme  Severity = "extreme"
	SeveritySevere   Severity = "severe"
	SeverityModerate Severity = "moderate"
	SeverityMild     Severity = "mild"
	SeverityNone     Severity = "none"
	SeverityNoData   Severity = "nodata"
)

func ClassifySDCI(value float64) Severity {
	switch {
	case raster.IsNoData(value):
		return SeverityNoData
	case value < 20:
		return SeverityExtreme
	case value < 40:
		return SeveritySevere
	case value < 60:
		return SeverityModerate
	case value < 80:
		return SeverityMild
	default:
		return SeverityNone
	}
}

// ClassShares returns the fraction of valid cells falling in each severity
// bucket for an SDCI raster.
func ClassShares(sdci *raster.Raster) map[Severity]float64 {
	counts := make(map[Severity]int)
	valid := 0
	for _, v := range sdci.Cells {
		class := ClassifySDCI(v)
		if class == SeverityNoData {
			continue
		}
		counts[class]++
		valid++
	}

	shares := make(map[Severity]float64)
	if valid == 0 {
		return shares
	}
	for class, count := range counts {
		shares[class] = float64(count) / float64(valid)
	}
	return shares
}
