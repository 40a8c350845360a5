// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ice implements a 2D shallow-ice-approximation thickness
// evolution problem
//
//   H_t + div q = m,    q = -Gamma H^{n+2} |grad s|^{n-1} grad s
//
// where H(x,y,t) is ice thickness, b(x,y) is bed elevation,
// s = H + b is surface elevation and m is the climatic mass balance.
// The domain is the periodic square [0,L] x [0,L] and the thickness is
// constrained to H >= 0. Space is discretised by a Q1 structured-grid
// finite-volume-element method with bed-gradient upwinding of the
// degenerate part of the flux.
package ice

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Params holds grid-independent problem parameters
type Params struct {
	SecPerA   float64 // number of seconds in a year
	L         float64 // spatial domain is [0,L] x [0,L] [m]
	Tf        float64 // time domain is [0,Tf] [s]
	DtInit    float64 // requested initial time step [s]
	Grav      float64 // acceleration of gravity [m/s²]
	RhoIce    float64 // ice density [kg/m³]
	Nglen     float64 // Glen exponent for the SIA flux term
	Asoft     float64 // ice softness [Pa⁻ⁿ s⁻¹]
	Gamma     float64 // derived coefficient of the SIA flux term
	D0        float64 // representative value of diffusivity [m²/s]
	Eps       float64 // regularisation for less-degenerate diffusivity
	Delta     float64 // dimensionless regularisation for surface slope
	Lambda    float64 // amount of upwinding; 0 is none and 1 is full
	InitMagic float64 // years multiplying the mass balance for initial H
	Verif     bool    // use the exact dome solution and compute errors
}

// SetDefaults sets default values
func (o *Params) SetDefaults() {
	o.SecPerA = 31556926.0
	o.L = 1800.0e3
	o.Tf = 100.0 * o.SecPerA
	o.DtInit = 10.0 * o.SecPerA
	o.Grav = 9.81
	o.RhoIce = 910.0
	o.Nglen = 3.0
	o.Asoft = 1.0e-16 / o.SecPerA
	o.D0 = 1.0
	o.Eps = 0.001
	o.Delta = 1.0e-4
	o.Lambda = 0.25
	o.InitMagic = 1000.0
	o.Verif = false
}

// Derive computes Gamma = 2 A (rho g)^n / (n+2) after the other ice
// properties are set; it must be called before use
func (o *Params) Derive() (err error) {
	if o.Nglen <= 1.0 {
		return chk.Err("Glen exponent n = %g is not allowed; n > 1 is required", o.Nglen)
	}
	o.Gamma = 2.0 * math.Pow(o.RhoIce*o.Grav, o.Nglen) * o.Asoft / (o.Nglen + 2.0)
	return
}

// NewParams returns parameters with defaults and derived constants
func NewParams() (o *Params) {
	o = new(Params)
	o.SetDefaults()
	o.Derive()
	return
}
