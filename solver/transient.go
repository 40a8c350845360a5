// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// CbTransResid assembles fb with the negative of the transient
// residual: fb := -R(t, y, ydot)
type CbTransResid func(fb, y, ydot la.Vector, t float64) error

// CbTransJac assembles the Jacobian of the transient residual,
// d(R)/dy + β1 d(R)/dydot, into kb. β1 comes from the theta method:
// ydot = β1 y - ψ
type CbTransJac func(kb *la.Triplet, y, ydot la.Vector, t, β1 float64, firstIt bool) error

// CbMonitor is called after every accepted time step
type CbMonitor func(step int, t float64, y la.Vector)

// Transient integrates the method-of-lines system R(t, y, ydot) = 0 by
// the one-step theta method (Theta=1 gives backward Euler), with Newton
// iterations at every step and divergence control that halves the time
// increment and retries
type Transient struct {

	// input
	Neq   int          // number of equations
	Ffcn  CbTransResid // assembles fb := -R(t,y,ydot)
	Jfcn  CbTransJac   // assembles Jacobian; may be nil if SetFDJacobian is used
	Dat   *Data        // control data
	Mon   CbMonitor    // monitor; may be nil
	Lower la.Vector    // lower bounds passed to Newton; may be nil
	Upper la.Vector    // upper bounds passed to Newton; may be nil

	// statistics
	Nsteps  int // total number of steps
	Naccept int // number of accepted steps
	Ndiverg int // number of diverging steps

	// nonlinear solver
	nwt *Newton

	// current step state
	t      float64
	β1, β2 float64
	ydot   la.Vector
	ψ      la.Vector
	ybkp   la.Vector
	dotbkp la.Vector
}

// NewTransient returns a transient solver; nnz is the Jacobian nonzeros
// estimate handed to the Newton solver
func NewTransient(dat *Data, neq, nnz int, ffcn CbTransResid, jfcn CbTransJac) (o *Transient) {
	o = new(Transient)
	o.Neq = neq
	o.Ffcn = ffcn
	o.Jfcn = jfcn
	o.Dat = dat
	o.ydot = la.NewVector(neq)
	o.ψ = la.NewVector(neq)
	o.ybkp = la.NewVector(neq)
	o.dotbkp = la.NewVector(neq)
	o.nwt = NewNewton(dat, neq, nnz, o.resid, o.jacob)
	return
}

// SetFDJacobian makes the step Jacobian come from structured-grid
// finite-difference coloring of the step residual instead of Jfcn
func (o *Transient) SetFDJacobian(fdj *FDJacobian) {
	fdj.Ffcn = o.resid
	o.Jfcn = nil
	o.nwt.Jfcn = fdj.AddToKb
}

// Free releases memory allocated by the linear solver
func (o *Transient) Free() {
	o.nwt.Free()
}

// resid wraps the transient residual for the Newton solver using the
// starred variables: ydot = β1 y - ψ
func (o *Transient) resid(fb, y la.Vector) (err error) {
	for i := 0; i < o.Neq; i++ {
		o.ydot[i] = o.β1*y[i] - o.ψ[i]
	}
	return o.Ffcn(fb, y, o.ydot, o.t)
}

// jacob wraps the transient Jacobian for the Newton solver
func (o *Transient) jacob(kb *la.Triplet, y la.Vector, firstIt bool) (err error) {
	for i := 0; i < o.Neq; i++ {
		o.ydot[i] = o.β1*y[i] - o.ψ[i]
	}
	return o.Jfcn(kb, y, o.ydot, o.t, o.β1, firstIt)
}

// Run integrates from t0 to tf, updating y in place. The initial time
// increment Δtini is halved upon divergence and restored gradually
// after accepted steps.
func (o *Transient) Run(y la.Vector, t0, tf, Δtini float64) (err error) {

	// check
	if len(y) != o.Neq {
		return chk.Err("y has wrong size: %d != %d", len(y), o.Neq)
	}
	if tf <= t0 {
		return chk.Err("final time must be greater than initial time: tf=%g t0=%g", tf, t0)
	}
	if Δtini <= 0 {
		return chk.Err("initial time increment must be positive: Δtini=%g", Δtini)
	}
	dat := o.Dat
	if dat.Theta < 1e-5 || dat.Theta > 1 {
		return chk.Err("theta must be within (0,1]; Theta=%g is invalid", dat.Theta)
	}

	// initial rate: assume a steady start
	o.ydot.Fill(0)
	o.nwt.Lower = o.Lower
	o.nwt.Upper = o.Upper

	// auxiliary
	md := 1.0    // time step multiplier if divergence control is on
	ndiverg := 0 // number of steps diverging in a row
	rate := la.NewVector(o.Neq)
	copy(rate, o.ydot)

	// time loop
	o.t = t0
	var Δt float64
	var step int
	for o.t < tf {

		// check for continued divergence
		if ndiverg >= dat.NdvgMax {
			return chk.Err("continuous divergence after %d steps reached", ndiverg)
		}

		// time increment
		Δt = Δtini * md
		if o.t+Δt > tf {
			Δt = tf - o.t
		}
		if Δt < dat.DtMin {
			return chk.Err("Δt increment is too small: %g < %g", Δt, dat.DtMin)
		}

		// theta-method coefficients and starred variables
		o.β1 = 1.0 / (dat.Theta * Δt)
		o.β2 = (1.0 - dat.Theta) / dat.Theta
		for i := 0; i < o.Neq; i++ {
			o.ψ[i] = o.β1*y[i] + o.β2*rate[i]
		}

		// backup in case the iterations diverge
		copy(o.ybkp, y)
		copy(o.dotbkp, rate)

		// run iterations
		o.t += Δt
		o.Nsteps++
		diverging, err := o.nwt.Solve(y)
		if err != nil {
			return chk.Err("iterations failed at t=%g:\n%v", o.t, err)
		}

		// restore solution and reduce time step upon divergence
		if dat.DvgCtrl {
			if diverging {
				if dat.ShowR {
					io.Pfred(". . . iterations diverging (%2d) . . .\n", ndiverg+1)
				}
				copy(y, o.ybkp)
				copy(rate, o.dotbkp)
				o.t -= Δt
				md *= 0.5
				ndiverg++
				o.Ndiverg++
				continue
			}
			ndiverg = 0
			if md < 1 {
				md *= 2.0
				if md > 1 {
					md = 1
				}
			}
		}

		// update rates
		for i := 0; i < o.Neq; i++ {
			rate[i] = o.β1*y[i] - o.ψ[i]
		}

		// accepted
		step++
		o.Naccept++
		if o.Mon != nil {
			o.Mon(step, o.t, y)
		}
	}
	return nil
}
