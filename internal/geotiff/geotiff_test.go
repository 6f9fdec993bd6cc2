package geotiff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

func TestWriteReadRoundTrip(t *testing.T) {
	extent := orb.Bound{Min: orb.Point{-4, 39}, Max: orb.Point{-3, 40}}
	r := raster.New("sdci", 4, 4, extent, 0.25, "")
	for i := range r.Cells {
		r.Cells[i] = float64(i) * 1.5
	}
	r.Cells[5] = raster.NoData

	path := filepath.Join(t.TempDir(), "sdci.tiff")
	require.NoError(t, WriteRaster(r, path))

	got, err := ReadRaster(path)
	require.NoError(t, err)

	assert.Equal(t, "sdci", got.Name)
	assert.Equal(t, r.Width, got.Width)
	assert.Equal(t, r.Height, got.Height)
	assert.InDelta(t, r.Resolution, got.Resolution, 1e-9)
	assert.InDelta(t, extent.Min[0], got.Extent.Min[0], 1e-9)
	assert.InDelta(t, extent.Max[1], got.Extent.Max[1], 1e-9)

	for i := range r.Cells {
		if raster.IsNoData(r.Cells[i]) {
			assert.True(t, raster.IsNoData(got.Cells[i]), "cell %d should round-trip as nodata", i)
			continue
		}
		assert.InDelta(t, r.Cells[i], got.Cells[i], 1e-9)
	}
}

func TestReadRasterMissingFile(t *testing.T) {
	_, err := ReadRaster(filepath.Join(t.TempDir(), "missing.tiff"))
	require.Error(t, err)
}

func TestReadBandOutOfRange(t *testing.T) {
	r := raster.New("band", 2, 2, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, 0.5, "")
	path := filepath.Join(t.TempDir(), "band.tiff")
	require.NoError(t, WriteRaster(r, path))

	_, err := ReadBand(path, 2, "nope")
	require.Error(t, err)
}

func TestWriteReadRoundTripNonSquareCells(t *testing.T) {
	// The downloader clamps width and height independently, so a scene can
	// have different pixel sizes per axis. Both extents must survive a write.
	extent := orb.Bound{Min: orb.Point{-4, 39.5}, Max: orb.Point{-3, 40}}
	r := raster.New("scene", 4, 10, extent, 0.25, "")
	for i := range r.Cells {
		r.Cells[i] = float64(i)
	}

	path := filepath.Join(t.TempDir(), "scene.tiff")
	require.NoError(t, WriteRaster(r, path))

	got, err := ReadRaster(path)
	require.NoError(t, err)
	assert.InDelta(t, extent.Min[0], got.Extent.Min[0], 1e-9)
	assert.InDelta(t, extent.Max[0], got.Extent.Max[0], 1e-9)
	assert.InDelta(t, extent.Min[1], got.Extent.Min[1], 1e-9)
	assert.InDelta(t, extent.Max[1], got.Extent.Max[1], 1e-9)
}

func TestCellToLonLat(t *testing.T) {
	r := raster.New("grid", 2, 2, orb.Bound{Min: orb.Point{10, 20}, Max: orb.Point{12, 22}}, 1, "")

	lon, lat := CellToLonLat(r, 0, 0)
	assert.InDelta(t, 10.5, lon, 1e-9)
	assert.InDelta(t, 21.5, lat, 1e-9)

	lon, lat = CellToLonLat(r, 1, 1)
	assert.InDelta(t, 11.5, lon, 1e-9)
	assert.InDelta(t, 20.5, lat, 1e-9)
}

func TestCellToLonLatNonSquareCells(t *testing.T) {
	// 1 degree of longitude over 4 columns, 0.5 degree of latitude over 5
	// rows: x step 0.25, y step 0.1.
	r := raster.New("scene", 4, 5, orb.Bound{Min: orb.Point{-4, 39.5}, Max: orb.Point{-3, 40}}, 0.25, "")

	lon, lat := CellToLonLat(r, 0, 0)
	assert.InDelta(t, -3.875, lon, 1e-9)
	assert.InDelta(t, 39.95, lat, 1e-9)

	// the bottom row stays inside the extent
	lon, lat = CellToLonLat(r, 3, 4)
	assert.InDelta(t, -3.125, lon, 1e-9)
	assert.InDelta(t, 39.55, lat, 1e-9)
	assert.GreaterOrEqual(t, lat, r.Extent.Min[1])
}
