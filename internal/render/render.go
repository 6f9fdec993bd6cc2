package render

import (
	"fmt"
	"image/color"

	"github.com/drought-watch/drought-watch-cli/internal/raster"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	rampLevels = 100

	marginLeft   = 60
	marginBottom = 40
	marginTop    = 30
	marginRight  = 20
)

// Options control the rendered map. Zero values fall back to the raster's
// name as title, lon/lat axis labels and the default green-yellow-red ramp.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Stops  []color.RGBA
}

// DefaultStops is the three-stop drought ramp: healthy green through yellow
// to dry red.
func DefaultStops() []color.RGBA {
	return []color.RGBA{
		{R: 0, G: 160, B: 0, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 200, G: 0, B: 0, A: 255},
	}
}

var nodataColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}

// Ramp interpolates the given color stops into a fixed number of levels.
func Ramp(stops []color.RGBA, levels int) []color.RGBA {
	if len(stops) == 0 {
		stops = DefaultStops()
	}
	if len(stops) == 1 {
		stops = append(stops, stops[0])
	}

	ramp := make([]color.RGBA, levels)
	segments := len(stops) - 1
	for i := range ramp {
		pos := float64(i) / float64(levels-1) * float64(segments)
		seg := int(pos)
		if seg >= segments {
			seg = segments - 1
		}
		t := pos - float64(seg)
		a, b := stops[seg], stops[seg+1]
		ramp[i] = color.RGBA{
			R: lerp(a.R, b.R, t),
			G: lerp(a.G, b.G, t),
			B: lerp(a.B, b.B, t),
			A: 255,
		}
	}
	return ramp
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Render draws a raster as a PNG map with a title and axis labels. Values
// are stretched between the raster's min and max across the ramp levels;
// nodata cells are painted gray. A uniform raster paints the first level,
// it does not fail.
func Render(r *raster.Raster, path string, opts Options) error {
	title := opts.Title
	if title == "" {
		title = r.Name
	}
	xLabel := opts.XLabel
	if xLabel == "" {
		xLabel = "Longitude"
	}
	yLabel := opts.YLabel
	if yLabel == "" {
		yLabel = "Latitude"
	}
	ramp := Ramp(opts.Stops, rampLevels)

	min, err := r.Min()
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", r.Name, err)
	}
	max, err := r.Max()
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", r.Name, err)
	}

	width := marginLeft + r.Width + marginRight
	height := marginTop + r.Height + marginBottom

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.At(x, y)
			clr := nodataColor
			if !raster.IsNoData(v) {
				clr = ramp[levelFor(v, min, max)]
			}
			dc.SetColor(clr)
			dc.SetPixel(marginLeft+x, marginTop+y)
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(width)/2, float64(marginTop)/2, 0.5, 0.5)
	dc.DrawStringAnchored(xLabel, float64(width)/2, float64(height)-float64(marginBottom)/2, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), float64(marginLeft)/3, float64(height)/2)
	dc.DrawStringAnchored(yLabel, float64(marginLeft)/3, float64(height)/2, 0.5, 0.5)
	dc.Pop()

	// Extent ticks at the map corners.
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", r.Extent.Min[0]), float64(marginLeft), float64(marginTop+r.Height)+12, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", r.Extent.Max[0]), float64(marginLeft+r.Width), float64(marginTop+r.Height)+12, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", r.Extent.Max[1]), float64(marginLeft)-25, float64(marginTop)+6, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.3f", r.Extent.Min[1]), float64(marginLeft)-25, float64(marginTop+r.Height)-6, 0.5, 0.5)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func levelFor(v, min, max float64) int {
	if max == min {
		return 0
	}
	norm := (v - min) / (max - min)
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	level := int(norm * float64(rampLevels-1))
	return level
}
