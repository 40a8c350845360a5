// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cmb implements climatic mass balance models for ice sheets
package cmb

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SecPerA is the number of seconds in a year
const SecPerA = 31556926.0

// Model defines climatic mass balance as a function of surface
// elevation s = H + b. Units: M is in m/s of ice-equivalent thickness.
type Model interface {
	Init(prms dbf.Params) error // initialises and sets parameters
	M(s float64) float64        // mass balance at surface elevation s
	DMds(s float64) float64     // derivative of M w.r.t. s
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// New returns a new model of the named kind
func New(name string) (Model, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find cmb model named %q", name)
	}
	return alloc(), nil
}
