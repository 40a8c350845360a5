// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/hui-aqua/p4pdes/grid"
)

// FDJacobian assembles the Jacobian of a structured-grid residual by
// forward differences with grid coloring. A residual whose component at
// point (i,j) depends only on points within stencil half-width W can be
// differentiated with (2W+1)² residual evaluations, independently of
// the grid size: all points of the same color are perturbed at once and
// the differences are attributed within each stencil.
type FDJacobian struct {

	// input
	G    *grid.Grid // the grid defining the coloring
	W    int        // stencil half-width; 1 gives a 9-point stencil
	Ffcn CbResid    // assembles fb := -R(y)

	// workspace
	fb0, fb1, ypert, h la.Vector
}

// NewFDJacobian returns a finite-difference Jacobian assembler. On
// periodic grids the number of points along each direction must be
// divisible by 2W+1 so that the coloring stays independent across the
// wrap.
func NewFDJacobian(g *grid.Grid, w int, ffcn CbResid) (o *FDJacobian, err error) {
	nc := 2*w + 1
	if g.Periodic && (g.Nx%nc != 0 || g.Ny%nc != 0) {
		return nil, chk.Err("periodic coloring needs Nx and Ny divisible by %d; got %dx%d", nc, g.Nx, g.Ny)
	}
	o = new(FDJacobian)
	o.G = g
	o.W = w
	o.Ffcn = ffcn
	n := g.Size()
	o.fb0 = la.NewVector(n)
	o.fb1 = la.NewVector(n)
	o.ypert = la.NewVector(n)
	o.h = la.NewVector(n)
	return
}

// Nnz returns the number of nonzeros this assembler puts into the
// triplet
func (o *FDJacobian) Nnz() int {
	nc := 2*o.W + 1
	return nc * nc * o.G.Size()
}

// AddToKb assembles the Jacobian into kb at state y
func (o *FDJacobian) AddToKb(kb *la.Triplet, y la.Vector, firstIt bool) (err error) {

	// base residual
	o.fb0.Fill(0)
	err = o.Ffcn(o.fb0, y)
	if err != nil {
		return
	}

	// perturbation sizes
	sqeps := math.Sqrt(1e-16)
	for i, v := range y {
		o.h[i] = sqeps * (1.0 + math.Abs(v))
	}

	// one perturbed residual evaluation per color
	g := o.G
	nc := 2*o.W + 1
	for cj := 0; cj < nc; cj++ {
		for ci := 0; ci < nc; ci++ {

			// perturb all points of color (ci,cj)
			copy(o.ypert, y)
			for j := cj; j < g.Ny; j += nc {
				for i := ci; i < g.Nx; i += nc {
					c := g.Id(i, j)
					o.ypert[c] += o.h[c]
				}
			}
			o.fb1.Fill(0)
			err = o.Ffcn(o.fb1, o.ypert)
			if err != nil {
				return
			}

			// attribute differences within each stencil; fb = -R, thus
			// dR/dy = -(fb1-fb0)/h
			for j := cj; j < g.Ny; j += nc {
				for i := ci; i < g.Nx; i += nc {
					c := g.Id(i, j)
					for dj := -o.W; dj <= o.W; dj++ {
						for di := -o.W; di <= o.W; di++ {
							ii, jj := i+di, j+dj
							if !g.Periodic {
								if ii < 0 || ii >= g.Nx || jj < 0 || jj >= g.Ny {
									continue
								}
							}
							r := g.Id(ii, jj)
							kb.Put(r, c, -(o.fb1[r]-o.fb0[r])/o.h[c])
						}
					}
				}
			}
		}
	}
	return
}
