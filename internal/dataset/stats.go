package dataset

import (
	"github.com/drought-watch/drought-watch-cli/internal/raster"
)

// IndexStats summarizes one derived raster for the scene report.
type IndexStats struct {
	Index       string  `csv:"index"`
	Min         float64 `csv:"min"`
	Max         float64 `csv:"max"`
	Mean        float64 `csv:"mean"`
	ValidCells  int     `csv:"valid_cells"`
	NoDataCells int     `csv:"nodata_cells"`
}

// ComputeStats reduces each raster to its summary row. Rasters with no
// valid cells report zero stats instead of failing, the report should list
// them anyway.
func ComputeStats(rasters ...*raster.Raster) []IndexStats {
	stats := make([]IndexStats, 0, len(rasters))
	for _, r := range rasters {
		valid := 0
		sum := 0.0
		for _, v := range r.Cells {
			if raster.IsNoData(v) {
				continue
			}
			valid++
			sum += v
		}

		row := IndexStats{
			Index:       r.Name,
			ValidCells:  valid,
			NoDataCells: len(r.Cells) - valid,
		}
		if valid > 0 {
			min, _ := r.Min()
			max, _ := r.Max()
			row.Min = min
			row.Max = max
			row.Mean = sum / float64(valid)
		}
		stats = append(stats, row)
	}
	return stats
}
