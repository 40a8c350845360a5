// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements Newton iterations and an implicit time
// stepper over sparse linear algebra
package solver

// Data holds solver control data
type Data struct {

	// nonlinear iterations
	NmaxIt  int     // max number of iterations
	Atol    float64 // absolute tolerance for increment norm
	Rtol    float64 // relative tolerance for increment norm
	Itol    float64 // tolerance for convergence on RMS of increments
	FbTol   float64 // tolerance for relative convergence on residual
	FbMin   float64 // minimum absolute value of residual for convergence
	CteTg   bool    // use constant tangent (modified Newton) during iterations
	ShowR   bool    // show residuals during iterations
	DvgCtrl bool    // use divergence control
	NdvgMax int     // max number of continued divergence

	// transient analyses
	Theta float64 // theta-method coefficient; 1 gives backward Euler
	DtMin float64 // smallest allowed time increment

	// linear solver
	LinSol string // linear solver name; e.g. "umfpack"
}

// SetDefaults sets default values
func (o *Data) SetDefaults() {
	o.NmaxIt = 20
	o.Atol = 1e-6
	o.Rtol = 1e-6
	o.Itol = 1e-8
	o.FbTol = 1e-8
	o.FbMin = 1e-10
	o.DvgCtrl = true
	o.NdvgMax = 20
	o.Theta = 1.0
	o.DtMin = 1e-30
	o.LinSol = "umfpack"
}

// NewData returns solver control data with default values
func NewData() (o *Data) {
	o = new(Data)
	o.SetDefaults()
	return
}
