// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmb

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Elevation implements a mass balance linear in the surface elevation,
// capped above a hold elevation:
//
//   M(s) = zgrad * (min(s, holdelev) - ela)
//
// where ela is the equilibrium line altitude. Parameters (zgrad is
// given in 1/a and converted to 1/s):
//
//   "ela"      -- equilibrium line altitude [m]; default 2000
//   "zgrad"    -- vertical gradient of M [1/a]; default 0.004
//   "holdelev" -- hold M constant above this elevation [m]; default 2250
type Elevation struct {
	Ela      float64 // equilibrium line altitude [m]
	Zgrad    float64 // vertical gradient of M [1/s]
	Holdelev float64 // hold M constant above this elevation [m]
}

// add model to factory
func init() {
	allocators["elevation"] = func() Model { return new(Elevation) }
}

// Init initialises this structure
func (o *Elevation) Init(prms dbf.Params) (err error) {

	// defaults
	o.Ela = 2000.0
	o.Zgrad = 0.004 / SecPerA
	o.Holdelev = 2250.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "ela":
			o.Ela = p.V
		case "zgrad":
			o.Zgrad = p.V / SecPerA
		case "holdelev":
			o.Holdelev = p.V
		default:
			return chk.Err("elevation cmb model: parameter named %q is invalid", p.N)
		}
	}
	if o.Holdelev <= o.Ela {
		return chk.Err("elevation cmb model: holdelev=%g must be above ela=%g", o.Holdelev, o.Ela)
	}
	return
}

// M returns the mass balance at surface elevation s
func (o *Elevation) M(s float64) float64 {
	if s > o.Holdelev {
		s = o.Holdelev
	}
	return o.Zgrad * (s - o.Ela)
}

// DMds returns dM/ds
func (o *Elevation) DMds(s float64) float64 {
	if s > o.Holdelev {
		return 0
	}
	return o.Zgrad
}
