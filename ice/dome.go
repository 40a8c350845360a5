// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ice

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// dome verification solution (Bueler profile): an exact steady state of
// the SIA equation on a flat bed, with a compatible mass balance
const (
	domeR  = 750.0e3 // dome radius [m]
	domeH0 = 3600.0  // dome center height [m]
)

// radialcoord returns the distance from (x,y) to the domain center,
// bounded away from zero to avoid singular powers
func (o *Problem) radialcoord(x, y float64) (r float64) {
	xc := o.Par.L / 2.0
	r = math.Sqrt((x-xc)*(x-xc) + (y-xc)*(y-xc))
	if r < 0.01 {
		r = 0.01
	}
	return
}

// DomeCMB returns the mass balance compatible with the exact dome
func (o *Problem) DomeCMB(x, y float64) float64 {
	n := o.Par.Nglen
	pp := 1.0 / n
	cc := o.Par.Gamma * math.Pow(domeH0, 2.0*n+2.0) / math.Pow(2.0*domeR*(1.0-1.0/n), n)
	r := o.radialcoord(x, y)
	if r > domeR-0.01 {
		r = domeR - 0.01
	}
	s := r / domeR
	tmp1 := math.Pow(s, pp) + math.Pow(1.0-s, pp) - 1.0
	tmp2 := 2.0*math.Pow(s, pp) + math.Pow(1.0-s, pp-1.0)*(1.0-2.0*s) - 1.0
	return (cc / r) * math.Pow(tmp1, n-1.0) * tmp2
}

// DomeThickness fills h with the exact dome thickness at the grid points
func (o *Problem) DomeThickness(h la.Vector) {
	g := o.Grid
	n := o.Par.Nglen
	mm := 1.0 + 1.0/n
	qq := n / (2.0*n + 2.0)
	cc := domeH0 / math.Pow(1.0-1.0/n, qq)
	for k := 0; k < g.Ny; k++ {
		y := g.Y(k)
		for j := 0; j < g.Nx; j++ {
			r := o.radialcoord(g.X(j), y)
			if r < domeR-g.Dx/4.0 {
				s := r / domeR
				tmp := mm*s - 1.0/n + math.Pow(1.0-s, mm) - math.Pow(s, mm)
				h[g.Id(j, k)] = cc * math.Pow(tmp, qq)
			} else {
				h[g.Id(j, k)] = 0
			}
		}
	}
}
