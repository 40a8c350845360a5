// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// CbResid assembles fb with the NEGATIVE of the residual: fb := -R(y)
type CbResid func(fb, y la.Vector) error

// CbJac assembles the Jacobian dR/dy into the sparse triplet kb
type CbJac func(kb *la.Triplet, y la.Vector, firstIt bool) error

// Newton solves R(y) = 0 by Newton-Raphson iterations with sparse
// Jacobian factorisations. Optional Lower/Upper bounds turn the solver
// into a projected Newton method for variational inequalities: after
// each update the iterate is clamped onto the bounds and residual
// components that are complementarity-consistent at active bounds are
// ignored by the convergence test.
type Newton struct {

	// input
	Neq   int       // number of equations
	Ffcn  CbResid   // assembles fb := -R(y)
	Jfcn  CbJac     // assembles Jacobian
	Dat   *Data     // control data
	Lower la.Vector // lower bounds; may be nil
	Upper la.Vector // upper bounds; may be nil

	// results
	It     int     // number of iterations of last solve
	LargFb float64 // largest absolute residual component of last solve

	// linear system
	kb     *la.Triplet
	fb, wb la.Vector
	zed    la.Vector // zero vector for rms error computations
	lis    la.SparseSolver
	ready  bool
}

// NewNewton returns a Newton solver for neq equations with at most nnz
// nonzeros in the Jacobian
func NewNewton(dat *Data, neq, nnz int, ffcn CbResid, jfcn CbJac) (o *Newton) {
	o = new(Newton)
	o.Neq = neq
	o.Ffcn = ffcn
	o.Jfcn = jfcn
	o.Dat = dat
	o.kb = la.NewTriplet(neq, neq, nnz)
	o.fb = la.NewVector(neq)
	o.wb = la.NewVector(neq)
	o.zed = la.NewVector(neq)
	o.lis = la.NewSparseSolver(dat.LinSol)
	return
}

// Free releases memory allocated by the linear solver
func (o *Newton) Free() {
	if o.ready {
		o.lis.Free()
	}
}

// Solve performs the iterations, updating y in place
func (o *Newton) Solve(y la.Vector) (diverging bool, err error) {

	// auxiliary
	var it int
	var largFb, largFb0, Lδy float64
	var prevFb, prevLδy float64
	dat := o.Dat

	// message
	if dat.ShowR {
		io.Pf("%4s%23s%23s\n", "it", "largFb", "Lδy")
	}

	// iterations
	for it = 0; it < dat.NmaxIt; it++ {

		// assemble negative of residual
		o.fb.Fill(0)
		err = o.Ffcn(o.fb, y)
		if err != nil {
			return false, chk.Err("residual assembly failed:\n%v", err)
		}

		// find largest admissible residual component
		largFb = o.largestResid(y)

		// check convergence on fb
		if it == 0 {
			largFb0 = largFb
		} else {
			if largFb < dat.FbTol*largFb0 { // converged on fb
				break
			}
		}
		if largFb < dat.FbMin { // converged with smallest value of fb
			break
		}

		// check divergence on fb
		if it > 1 && dat.DvgCtrl {
			if largFb > prevFb {
				diverging = true
				break
			}
		}
		prevFb = largFb

		// assemble Jacobian matrix
		if it == 0 || !dat.CteTg {
			o.kb.Start()
			err = o.Jfcn(o.kb, y, it == 0)
			if err != nil {
				return false, chk.Err("Jacobian assembly failed:\n%v", err)
			}

			// initialise linear solver and perform factorisation
			if !o.ready {
				o.lis.Init(o.kb, nil)
				o.ready = true
			}
			o.lis.Fact()
		}

		// solve for wb := δy
		o.lis.Solve(o.wb, o.fb, false)

		// update primary variables and project onto bounds
		for i := 0; i < o.Neq; i++ {
			y[i] += o.wb[i]
		}
		o.project(y)

		// compute RMS norm of δy and check convergence on δy
		Lδy = la.VecRmsError(o.wb, o.zed, dat.Atol, dat.Rtol, y)

		// message
		if dat.ShowR {
			io.Pf("%4d%23.15e%23.15e\n", it, largFb, Lδy)
		}

		// stop if converged on δy
		if Lδy < dat.Itol {
			break
		}

		// check divergence on Lδy
		if it > 1 && dat.DvgCtrl {
			if Lδy > prevLδy {
				diverging = true
				break
			}
		}
		prevLδy = Lδy
	}

	// results
	o.It = it
	o.LargFb = largFb

	// check if iterations exhausted
	if it == dat.NmaxIt {
		return false, chk.Err("max number of iterations reached: it = %d (largFb = %g)", it, largFb)
	}
	return
}

// project clamps y onto the bounds
func (o *Newton) project(y la.Vector) {
	if o.Lower != nil {
		for i := 0; i < o.Neq; i++ {
			if y[i] < o.Lower[i] {
				y[i] = o.Lower[i]
			}
		}
	}
	if o.Upper != nil {
		for i := 0; i < o.Neq; i++ {
			if y[i] > o.Upper[i] {
				y[i] = o.Upper[i]
			}
		}
	}
}

// largestResid returns the largest absolute component of fb, skipping
// components at active bounds where the residual pushes outwards; with
// fb = -R, an active lower bound admits fb <= 0 and an active upper
// bound admits fb >= 0.
func (o *Newton) largestResid(y la.Vector) (largFb float64) {
	if o.Lower == nil && o.Upper == nil {
		return o.fb.Largest(1)
	}
	for i := 0; i < o.Neq; i++ {
		if o.Lower != nil && y[i] <= o.Lower[i] && o.fb[i] < 0 {
			continue
		}
		if o.Upper != nil && y[i] >= o.Upper[i] && o.fb[i] > 0 {
			continue
		}
		if math.Abs(o.fb[i]) > largFb {
			largFb = math.Abs(o.fb[i])
		}
	}
	return
}
