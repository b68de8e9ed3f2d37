// Package plotout renders analysis results to image files.
package plotout

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var lineColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// SaveLines plots the series named by yKeys against xKey on a log-scaled
// x axis and writes the image to path. The format follows the file
// extension (png, svg, pdf).
func SaveLines(results map[string][]float64, xKey string, yKeys []string, title, xLabel, yLabel, path string) error {
	xs, ok := results[xKey]
	if !ok || len(xs) == 0 {
		return fmt.Errorf("no values for x key %q", xKey)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	for i, key := range yKeys {
		ys, ok := results[key]
		if !ok {
			return fmt.Errorf("no values for y key %q", key)
		}
		if len(ys) != len(xs) {
			return fmt.Errorf("series %q has %d points, x has %d", key, len(ys), len(xs))
		}

		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X = xs[j]
			pts[j].Y = ys[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building line for %q: %v", key, err)
		}
		line.Color = lineColors[i%len(lineColors)]
		p.Add(line)
		p.Legend.Add(key, line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot to %s: %v", path, err)
	}
	return nil
}
