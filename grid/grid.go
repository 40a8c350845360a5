// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements uniform structured 2D grids and discrete norms
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Grid holds a uniform structured 2D grid over [0,Lx] x [0,Ly].
//
// Node-centered grids include the boundary points; thus Dx = Lx/(Nx-1)
// and point (0,0) and (Nx-1,Ny-1) sit on the domain corners. These are
// used with Dirichlet boundary conditions.
//
// Periodic grids are cell-centered with wrap-around indexing; thus
// Dx = Lx/Nx and point (Nx-1,j) neighbours point (0,j).
type Grid struct {
	Nx, Ny   int     // number of points along x and y
	Lx, Ly   float64 // domain lengths
	Dx, Dy   float64 // grid spacings
	Periodic bool    // wrap-around indexing
}

// NewNodeCentered returns a node-centered grid including boundary points
func NewNodeCentered(nx, ny int, lx, ly float64) (o *Grid, err error) {
	if nx < 2 || ny < 2 {
		return nil, chk.Err("node-centered grid needs at least 2x2 points; got %dx%d", nx, ny)
	}
	if lx <= 0 || ly <= 0 {
		return nil, chk.Err("domain lengths must be positive; got Lx=%g Ly=%g", lx, ly)
	}
	o = &Grid{Nx: nx, Ny: ny, Lx: lx, Ly: ly}
	o.Dx = lx / float64(nx-1)
	o.Dy = ly / float64(ny-1)
	return
}

// NewPeriodic returns a cell-centered grid with periodic wrap-around
func NewPeriodic(nx, ny int, lx, ly float64) (o *Grid, err error) {
	if nx < 2 || ny < 2 {
		return nil, chk.Err("periodic grid needs at least 2x2 points; got %dx%d", nx, ny)
	}
	if lx <= 0 || ly <= 0 {
		return nil, chk.Err("domain lengths must be positive; got Lx=%g Ly=%g", lx, ly)
	}
	o = &Grid{Nx: nx, Ny: ny, Lx: lx, Ly: ly, Periodic: true}
	o.Dx = lx / float64(nx)
	o.Dy = ly / float64(ny)
	return
}

// Size returns the total number of grid points
func (o *Grid) Size() int { return o.Nx * o.Ny }

// Id returns the linear (row-major) index of point (i,j). On periodic
// grids i and j may lie one wrap outside [0,Nx)x[0,Ny).
func (o *Grid) Id(i, j int) int {
	if o.Periodic {
		if i < 0 {
			i += o.Nx
		} else if i >= o.Nx {
			i -= o.Nx
		}
		if j < 0 {
			j += o.Ny
		} else if j >= o.Ny {
			j -= o.Ny
		}
	}
	return j*o.Nx + i
}

// X returns the x-coordinate of column i
func (o *Grid) X(i int) float64 { return float64(i) * o.Dx }

// Y returns the y-coordinate of row j
func (o *Grid) Y(j int) float64 { return float64(j) * o.Dy }

// IsBoundary tells whether point (i,j) lies on the domain boundary.
// Periodic grids have no boundary.
func (o *Grid) IsBoundary(i, j int) bool {
	if o.Periodic {
		return false
	}
	return i == 0 || i == o.Nx-1 || j == 0 || j == o.Ny-1
}

// Refine returns a new grid refined the given number of levels. Each
// level doubles the resolution: a node-centered n becomes 2n-1 and a
// periodic n becomes 2n, keeping the same domain.
func (o *Grid) Refine(levels int) (r *Grid) {
	nx, ny := o.Nx, o.Ny
	for l := 0; l < levels; l++ {
		if o.Periodic {
			nx, ny = 2*nx, 2*ny
		} else {
			nx, ny = 2*nx-1, 2*ny-1
		}
	}
	if o.Periodic {
		r, _ = NewPeriodic(nx, ny, o.Lx, o.Ly)
		return
	}
	r, _ = NewNodeCentered(nx, ny, o.Lx, o.Ly)
	return
}

// NewVec allocates a field vector over this grid
func (o *Grid) NewVec() la.Vector { return la.NewVector(o.Size()) }

// NormInf returns the maximum absolute component of field u
func (o *Grid) NormInf(u la.Vector) float64 {
	return u.Largest(1)
}

// NormTwoH returns the Euclidean norm scaled to mimic the continuous
// L2 norm: |u|_2 / sqrt((Nx-1)*(Ny-1))
func (o *Grid) NormTwoH(u la.Vector) float64 {
	return u.Norm() / math.Sqrt(float64((o.Nx-1)*(o.Ny-1)))
}

// NormAvg returns the average of absolute components: |u|_1 / (Nx*Ny)
func (o *Grid) NormAvg(u la.Vector) (res float64) {
	for _, v := range u {
		res += math.Abs(v)
	}
	return res / float64(o.Size())
}
