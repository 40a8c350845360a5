// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/hui-aqua/p4pdes/grid"
)

// Curve is a named field to be sampled along a grid row
type Curve struct {
	Name string    // legend entry
	V    []float64 // field values at the grid points
}

// line colors cycled by ProfilePNG
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
}

// ProfilePNG plots the curves along grid row k against x and saves the
// figure; the extension of fname selects the format, e.g. profile.png
func ProfilePNG(fname, title, ylabel string, g *grid.Grid, k int, curves []Curve) (err error) {
	if k < 0 || k >= g.Ny {
		return chk.Err("row index k=%d is outside the grid with Ny=%d", k, g.Ny)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x [m]"
	p.Y.Label.Text = ylabel
	for i, c := range curves {
		pts := make(plotter.XYs, g.Nx)
		for j := 0; j < g.Nx; j++ {
			pts[j] = plotter.XY{X: g.X(j), Y: c.V[g.Id(j, k)]}
		}
		var line *plotter.Line
		line, err = plotter.NewLine(pts)
		if err != nil {
			return
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Name, line)
	}
	p.Legend.Top = true
	return p.Save(8*vg.Inch, 5*vg.Inch, fname)
}

// FieldHTML renders v as a colored scatter over the grid into a
// standalone HTML file
func FieldHTML(fname, title string, g *grid.Grid, v []float64) (err error) {

	// collect points and value range
	vmin, vmax := v[0], v[0]
	data := make([]opts.ScatterData, 0, g.Size())
	for k := 0; k < g.Ny; k++ {
		y := g.Y(k)
		for j := 0; j < g.Nx; j++ {
			val := v[g.Id(j, k)]
			if val < vmin {
				vmin = val
			}
			if val > vmax {
				vmax = val
			}
			data = append(data, opts.ScatterData{Value: []interface{}{g.X(j), y, val}})
		}
	}

	// chart
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: io.Sf("%d x %d grid", g.Nx, g.Ny)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: g.Lx, Name: "x [m]"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: g.Ly, Name: "y [m]"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(vmin),
			Max:        float32(vmax),
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)
	scatter.AddSeries("field", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	// render
	f, err := os.Create(fname)
	if err != nil {
		return chk.Err("cannot create %q:\n%v", fname, err)
	}
	defer f.Close()
	return scatter.Render(f)
}
