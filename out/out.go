// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out saves and plots fields defined on structured 2D grids
package out

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/stat"

	"github.com/hui-aqua/p4pdes/grid"
)

// SaveField writes v to a text file with one "x y v" line per grid
// point and a blank line between grid rows, readable by gnuplot
func SaveField(fname string, g *grid.Grid, v []float64) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return chk.Err("cannot create %q:\n%v", fname, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for k := 0; k < g.Ny; k++ {
		y := g.Y(k)
		for j := 0; j < g.Nx; j++ {
			fmt.Fprintf(w, "%23.15e %23.15e %23.15e\n", g.X(j), y, v[g.Id(j, k)])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// ConvRate fits errs = C * hs^rate by least squares on log-log axes and
// returns the rate; hs are mesh sizes and errs the corresponding error
// norms, all positive
func ConvRate(hs, errs []float64) (rate float64, err error) {
	if len(hs) != len(errs) || len(hs) < 2 {
		return 0, chk.Err("ConvRate needs two or more (h, err) pairs; %d and %d given", len(hs), len(errs))
	}
	x := make([]float64, len(hs))
	y := make([]float64, len(hs))
	for i := range hs {
		x[i] = math.Log(hs[i])
		y[i] = math.Log(errs[i])
	}
	_, rate = stat.LinearRegression(x, y, nil, false)
	return
}
