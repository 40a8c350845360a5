// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package poisson implements a structured-grid 2D Poisson problem
//
//   -cx uxx - cy uyy = f    in (0,Lx) x (0,Ly)
//                  u = g    on the boundary
//
// discretised by 5-point finite differences. The residual form
// F(u) = 0 rediscretises the whole grid, so the Jacobian row of a
// boundary point keeps the same diagonal scale as interior rows.
package poisson

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/hui-aqua/p4pdes/grid"
	"github.com/hui-aqua/p4pdes/solver"
)

// Problem holds the Poisson problem data
type Problem struct {

	// input
	Grid   *grid.Grid
	Cx, Cy float64                     // diffusion scale factors
	UExact func(x, y float64) float64 // exact solution; boundary data
	FRhs   func(x, y float64) float64 // right-hand side
}

// New returns a Poisson problem over grid g with the named manufactured
// solution (see Solutions for the available names)
func New(g *grid.Grid, solution string) (o *Problem, err error) {
	if g.Periodic {
		return nil, chk.Err("the Poisson problem needs a node-centered grid with boundary points")
	}
	sol, err := GetSolution(solution)
	if err != nil {
		return
	}
	o = &Problem{Grid: g, Cx: 1, Cy: 1, UExact: sol.UExact, FRhs: sol.FRhs}
	return
}

// scales returns the residual scale factors
func (o *Problem) scales() (scx, scy, scdiag, darea float64) {
	g := o.Grid
	scx = o.Cx * g.Dy / g.Dx
	scy = o.Cy * g.Dx / g.Dy
	scdiag = 2.0 * (scx + scy)
	darea = g.Dx * g.Dy
	return
}

// SetExact fills u with the exact solution at the grid points
func (o *Problem) SetExact(u la.Vector) {
	g := o.Grid
	for j := 0; j < g.Ny; j++ {
		y := g.Y(j)
		for i := 0; i < g.Nx; i++ {
			u[g.Id(i, j)] = o.UExact(g.X(i), y)
		}
	}
}

// AddToRhs adds the negative of the residual to fb. Interior points
// reference the Dirichlet data directly for boundary neighbours, so
// boundary unknowns never couple into interior rows.
func (o *Problem) AddToRhs(fb, y la.Vector) (err error) {
	g := o.Grid
	scx, scy, scdiag, darea := o.scales()
	for j := 0; j < g.Ny; j++ {
		yy := g.Y(j)
		for i := 0; i < g.Nx; i++ {
			xx := g.X(i)
			r := g.Id(i, j)
			if g.IsBoundary(i, j) {
				fb[r] -= scdiag * (y[r] - o.UExact(xx, yy))
				continue
			}
			uw := o.neighbour(y, i-1, j)
			ue := o.neighbour(y, i+1, j)
			us := o.neighbour(y, i, j-1)
			un := o.neighbour(y, i, j+1)
			res := scdiag*y[r] - scx*(uw+ue) - scy*(us+un) - darea*o.FRhs(xx, yy)
			fb[r] -= res
		}
	}
	return
}

// neighbour returns the unknown at (i,j), or the Dirichlet data if
// (i,j) is a boundary point
func (o *Problem) neighbour(y la.Vector, i, j int) float64 {
	g := o.Grid
	if g.IsBoundary(i, j) {
		return o.UExact(g.X(i), g.Y(j))
	}
	return y[g.Id(i, j)]
}

// AddToKb adds the analytic Jacobian to the sparse triplet kb
func (o *Problem) AddToKb(kb *la.Triplet, y la.Vector, firstIt bool) (err error) {
	g := o.Grid
	scx, scy, scdiag, _ := o.scales()
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			r := g.Id(i, j)
			kb.Put(r, r, scdiag)
			if g.IsBoundary(i, j) {
				continue
			}
			if !g.IsBoundary(i-1, j) {
				kb.Put(r, g.Id(i-1, j), -scx)
			}
			if !g.IsBoundary(i+1, j) {
				kb.Put(r, g.Id(i+1, j), -scx)
			}
			if !g.IsBoundary(i, j-1) {
				kb.Put(r, g.Id(i, j-1), -scy)
			}
			if !g.IsBoundary(i, j+1) {
				kb.Put(r, g.Id(i, j+1), -scy)
			}
		}
	}
	return
}

// Nnz returns an upper bound on the number of Jacobian nonzeros
func (o *Problem) Nnz() int {
	return 5 * o.Grid.Size()
}

// Solve runs Newton iterations on u. The problem is linear, so the
// first iteration lands on the solution and the second confirms it.
func (o *Problem) Solve(dat *solver.Data, u la.Vector) (err error) {
	nwt := solver.NewNewton(dat, o.Grid.Size(), o.Nnz(), o.AddToRhs, o.AddToKb)
	defer nwt.Free()
	_, err = nwt.Solve(u)
	return
}

// Errors returns the max norm and the scaled L2 norm of u - uexact
func (o *Problem) Errors(u la.Vector) (einf, etwoh float64) {
	g := o.Grid
	e := g.NewVec()
	o.SetExact(e)
	for i := 0; i < g.Size(); i++ {
		e[i] = u[i] - e[i]
	}
	return g.NormInf(e), g.NormTwoH(e)
}
