// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ice

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// frequencies and coefficients of the synthetic bed; vaguely-random
// values generated by fiddling
var (
	bedJC = [4]int{1, 3, 6, 8}
	bedKC = [4]int{1, 3, 4, 7}
	bedC  = [4][4]float64{
		{2.00000000, 0.33000000, -0.55020034, 0.54495520},
		{0.50000000, 0.45014486, 0.60551833, -0.52250644},
		{0.93812068, 0.32638429, -0.24654812, 0.33887052},
		{0.17592361, -0.35496741, 0.22694547, -0.05280704},
	}
)

const bedScale = 750.0 // m

// Bed returns the synthetic bed elevation b(x,y), a sum of a few sines
// which is periodic on [0,L] x [0,L]
func (o *Problem) Bed(x, y float64) (b float64) {
	z := math.Pi / o.Par.L
	for r := 0; r < 4; r++ {
		for s := 0; s < 4; s++ {
			b += bedC[r][s] * math.Sin(float64(bedJC[r])*z*x) * math.Sin(float64(bedKC[s])*z*y)
		}
	}
	return bedScale * b
}

// FormBed fills b with the bed elevation at the grid points; the bed is
// flat zero in verification mode
func (o *Problem) FormBed(b la.Vector) {
	g := o.Grid
	for k := 0; k < g.Ny; k++ {
		y := g.Y(k)
		for j := 0; j < g.Nx; j++ {
			if o.Par.Verif {
				b[g.Id(j, k)] = 0
				continue
			}
			b[g.Id(j, k)] = o.Bed(g.X(j), y)
		}
	}
}
