// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ice

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/hui-aqua/p4pdes/grid"
	"github.com/hui-aqua/p4pdes/mdl/cmb"
)

// Problem holds the discretised SIA problem over a periodic grid
type Problem struct {

	// input
	Grid *grid.Grid // cell-centered periodic grid
	Par  *Params    // problem parameters
	Cmb  cmb.Model  // climatic mass balance; unused in verification mode

	// derived
	bed la.Vector // bed elevation at the grid points

	// scratchpad: flux at the 4 quadrature points of every element
	q [4]la.Vector
}

// New returns a new SIA problem. The grid must be periodic and the
// parameters must have Gamma derived. A mass balance model is required
// unless the parameters select verification mode.
func New(g *grid.Grid, par *Params, m cmb.Model) (o *Problem, err error) {
	if !g.Periodic {
		return nil, chk.Err("the SIA problem needs a periodic cell-centered grid")
	}
	if par.Gamma <= 0 {
		return nil, chk.Err("parameters are incomplete: Gamma = %g; call Derive first", par.Gamma)
	}
	if !par.Verif && m == nil {
		return nil, chk.Err("a cmb model is required unless verification mode is on")
	}
	o = &Problem{Grid: g, Par: par, Cmb: m}
	o.bed = g.NewVec()
	o.FormBed(o.bed)
	for c := 0; c < 4; c++ {
		o.q[c] = g.NewVec()
	}
	return
}

// SurfaceMassBalance returns m at point (x,y) with surface elevation s;
// in verification mode it is the dome-compatible mass balance
func (o *Problem) SurfaceMassBalance(x, y, s float64) float64 {
	if o.Par.Verif {
		return o.DomeCMB(x, y)
	}
	return o.Cmb.M(s)
}

// InitialH fills h with the initial thickness: the exact dome in
// verification mode, otherwise the chopped and scaled mass balance of
// the bed, H = initmagic * secpera * max(M(b), 0)
func (o *Problem) InitialH(h la.Vector) {
	if o.Par.Verif {
		o.DomeThickness(h)
		return
	}
	g := o.Grid
	for k := 0; k < g.Ny; k++ {
		for j := 0; j < g.Nx; j++ {
			r := g.Id(j, k)
			m := o.Cmb.M(o.bed[r])
			if m < 0 {
				m = 0
			}
			h[r] = m * o.Par.InitMagic * o.Par.SecPerA
		}
	}
}

// Nnz returns the number of Jacobian nonzeros of the 9-point stencil
func (o *Problem) Nnz() int {
	return 9 * o.Grid.Size()
}

// Q1 interpolation /////////////////////////////////////////////////////////////////////////////////

// gradients of the weights of the Q1 interpolant
var (
	q1gx = [4]float64{-1.0, 1.0, 1.0, -1.0}
	q1gy = [4]float64{-1.0, -1.0, 1.0, 1.0}
)

// grad2 is the value of a gradient at a point
type grad2 struct {
	x, y float64
}

// fieldatpt evaluates the Q1 interpolant of the corner values ff at the
// element-local point (xi,eta) in [0,1]²
func fieldatpt(xi, eta float64, ff [4]float64) float64 {
	x := [4]float64{1.0 - xi, xi, xi, 1.0 - xi}
	y := [4]float64{1.0 - eta, 1.0 - eta, eta, eta}
	return x[0]*y[0]*ff[0] + x[1]*y[1]*ff[1] + x[2]*y[2]*ff[2] + x[3]*y[3]*ff[3]
}

// gradfatpt evaluates the gradient of the Q1 interpolant at (xi,eta)
func gradfatpt(xi, eta, dx, dy float64, ff [4]float64) (g grad2) {
	x := [4]float64{1.0 - xi, xi, xi, 1.0 - xi}
	y := [4]float64{1.0 - eta, 1.0 - eta, eta, eta}
	g.x = (q1gx[0]*y[0]*ff[0] + q1gx[1]*y[1]*ff[1] + q1gx[2]*y[2]*ff[2] + q1gx[3]*y[3]*ff[3]) / dx
	g.y = (x[0]*q1gy[0]*ff[0] + x[1]*q1gy[1]*ff[1] + x[2]*q1gy[2]*ff[2] + x[3]*q1gy[3]*ff[3]) / dy
	return
}

// corners gathers the 4 corner values of element (j,k), counterclockwise
// from the (j,k) node, wrapping periodically
func (o *Problem) corners(f la.Vector, j, k int) (ff [4]float64) {
	g := o.Grid
	ff[0] = f[g.Id(j, k)]
	ff[1] = f[g.Id(j+1, k)]
	ff[2] = f[g.Id(j+1, k+1)]
	ff[3] = f[g.Id(j, k+1)]
	return
}

// SIA flux /////////////////////////////////////////////////////////////////////////////////////////

// slopeFactor returns delta = Gamma |grad s|^{n-1} with the slope
// regularised by the dimensionless Delta parameter
func (o *Problem) slopeFactor(gH, gb grad2) float64 {
	n := o.Par.Nglen
	sx := gH.x + gb.x
	sy := gH.y + gb.y
	slopesqr := sx*sx + sy*sy + o.Par.Delta*o.Par.Delta
	return o.Par.Gamma * math.Pow(slopesqr, (n-1.0)/2.0)
}

// diffusivity returns D(eps) = (1-eps) delta |H|^{n+2} + eps D0, so
// that D(1) = D0 and D(0) is the degenerate SIA diffusivity
func (o *Problem) diffusivity(delta, h float64) float64 {
	return (1.0-o.Par.Eps)*delta*math.Pow(math.Abs(h), o.Par.Nglen+2.0) + o.Par.Eps*o.Par.D0
}

// flux returns one component of q = -D grad H + W |Hup|^{n+2} where
// W = -delta grad b carries the bed-slope part; the power of the
// thickness in the W term is evaluated at the upwind sample Hup
func (o *Problem) flux(gH, gb grad2, h, hup float64, xdir bool) float64 {
	delta := o.slopeFactor(gH, gb)
	d := o.diffusivity(delta, h)
	if xdir {
		return -d*gH.x - delta*gb.x*math.Pow(math.Abs(hup), o.Par.Nglen+2.0)
	}
	return -d*gH.y - delta*gb.y*math.Pow(math.Abs(hup), o.Par.Nglen+2.0)
}

// residual assembly ////////////////////////////////////////////////////////////////////////////////

// indexing of the 8 quadrature points along the boundary of the control
// volume centered at node (j,k): point s lies in element
// (j+jElem[s], k+kElem[s]) at its local flux point cElem[s]
//
//    -------------------
//   |         |         |
//   |    ..2..|..1..    |
//   |   3:    |    :0   |
// k |--------- ---------|
//   |   4:    |    :7   |
//   |    ..5..|..6..    |
//   |         |         |
//    -------------------
//             j
var (
	jElem = [8]int{0, 0, -1, -1, -1, -1, 0, 0}
	kElem = [8]int{0, 0, 0, 0, -1, -1, -1, -1}
	cElem = [8]int{0, 3, 1, 0, 2, 1, 3, 2}
)

// direction and element-local coordinates of the 4 flux points of each
// element: points 0 and 2 carry x-components, 1 and 3 y-components
var (
	xdirElem = [4]bool{true, false, true, false}
	locx     = [4]float64{0.5, 0.75, 0.5, 0.25}
	locy     = [4]float64{0.25, 0.5, 0.75, 0.5}
)

// AddToRhs adds the negative of the transient residual to fb:
//
//   R_{j,k} = Hdot_{j,k} dx dy
//           + \int_{\partial V_{j,k}} q . n  -  m_{j,k} dx dy
//
// where V_{j,k} is the control volume centered at node (j,k) and the
// boundary integral uses two quadrature points on each of its four
// sides
func (o *Problem) AddToRhs(fb, h, hdot la.Vector, t float64) (err error) {

	// auxiliary
	g := o.Grid
	dx, dy := g.Dx, g.Dy
	upwind := o.Par.Lambda > 0
	upmin := (1.0 - o.Par.Lambda) * 0.5
	upmax := (1.0 + o.Par.Lambda) * 0.5

	// fluxes at the 4 points of every element
	for k := 0; k < g.Ny; k++ {
		for j := 0; j < g.Nx; j++ {
			hh := o.corners(h, j, k)
			bb := o.corners(o.bed, j, k)
			e := g.Id(j, k)
			for c := 0; c < 4; c++ {
				hc := fieldatpt(locx[c], locy[c], hh)
				gH := gradfatpt(locx[c], locy[c], dx, dy, hh)
				gb := gradfatpt(locx[c], locy[c], dx, dy, bb)
				hup := hc
				if upwind {
					var lxup, lyup float64
					if xdirElem[c] {
						lyup = locy[c]
						if gb.x <= 0 {
							lxup = upmin
						} else {
							lxup = upmax
						}
					} else {
						lxup = locx[c]
						if gb.y <= 0 {
							lyup = upmin
						} else {
							lyup = upmax
						}
					}
					hup = fieldatpt(lxup, lyup, hh)
				}
				o.q[c][e] = o.flux(gH, gb, hc, hup, xdirElem[c])
			}
		}
	}

	// quadrature coefficients along the control volume boundary
	coeff := [8]float64{dy / 2, dx / 2, dx / 2, -dy / 2, -dy / 2, -dx / 2, -dx / 2, dy / 2}

	// control volume integrals at every node
	darea := dx * dy
	for k := 0; k < g.Ny; k++ {
		y := g.Y(k)
		for j := 0; j < g.Nx; j++ {
			r := g.Id(j, k)
			res := hdot[r] * darea
			for s := 0; s < 8; s++ {
				res += coeff[s] * o.q[cElem[s]][g.Id(j+jElem[s], k+kElem[s])]
			}
			res -= o.SurfaceMassBalance(g.X(j), y, o.bed[r]+h[r]) * darea
			fb[r] -= res
		}
	}
	return
}

// Errors returns the max norm and the average norm of h - hexact in
// verification mode
func (o *Problem) Errors(h la.Vector) (einf, eavg float64) {
	g := o.Grid
	e := g.NewVec()
	o.DomeThickness(e)
	for i := 0; i < g.Size(); i++ {
		e[i] = h[i] - e[i]
	}
	return g.NormInf(e), g.NormAvg(e)
}
