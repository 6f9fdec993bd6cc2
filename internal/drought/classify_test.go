package drought

import (
	"testing"

	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/stretchr/testify/assert"
)

func TestClassifySDCI(t *testing.T) {
	assert.Equal(t, SeverityExtreme, ClassifySDCI(0))
	assert.Equal(t, SeverityExtreme, ClassifySDCI(19.9))
	assert.Equal(t, SeveritySevere, ClassifySDCI(20))
	assert.Equal(t, SeverityModerate, ClassifySDCI(40))
	assert.Equal(t, SeverityMild, ClassifySDCI(60))
	assert.Equal(t, SeverityNone, ClassifySDCI(80))
	assert.Equal(t, SeverityNone, ClassifySDCI(100))
	assert.Equal(t, SeverityNoData, ClassifySDCI(raster.NoData))
}

func TestClassShares(t *testing.T) {
	sdci := newTestRaster(t, 2, 2, []float64{10, 10, 90, raster.NoData})

	shares := ClassShares(sdci)
	assert.InDelta(t, 2.0/3.0, shares[SeverityExtreme], 1e-9)
	assert.InDelta(t, 1.0/3.0, shares[SeverityNone], 1e-9)
	assert.NotContains(t, shares, SeverityNoData)
}

func TestClassSharesEmptyRaster(t *testing.T) {
	sdci := newTestRaster(t, 1, 2, []float64{raster.NoData, raster.NoData})
	assert.Empty(t, ClassShares(sdci))
}
