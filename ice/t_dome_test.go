// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ice

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/hui-aqua/p4pdes/grid"
)

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01. defaults and derived constants")

	par := NewParams()
	chk.Float64(tst, "L", 1e-15, par.L, 1800.0e3)
	chk.Float64(tst, "lambda", 1e-15, par.Lambda, 0.25)
	if par.Gamma <= 0 {
		tst.Errorf("Gamma = %g must be positive\n", par.Gamma)
		return
	}

	// Gamma is linear in the softness
	doubled := NewParams()
	doubled.Asoft *= 2.0
	doubled.Derive()
	chk.Float64(tst, "Gamma scaling", 1e-25, doubled.Gamma, 2.0*par.Gamma)

	// Glen exponents at or below one are rejected
	bad := NewParams()
	bad.Nglen = 1.0
	if bad.Derive() == nil {
		tst.Errorf("n = 1 must be rejected\n")
	}
}

func Test_dome01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dome01. exact thickness profile")

	par := NewParams()
	par.Verif = true
	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(4) // 48 x 48
	prob, err := New(g, par, nil)
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	h := g.NewVec()
	prob.DomeThickness(h)

	// nonnegative everywhere, zero outside the dome radius, and close
	// to the center height at the middle of the domain
	hmax := 0.0
	for k := 0; k < g.Ny; k++ {
		for j := 0; j < g.Nx; j++ {
			v := h[g.Id(j, k)]
			if v < 0 {
				tst.Errorf("negative thickness at (%d,%d)\n", j, k)
				return
			}
			if v > hmax {
				hmax = v
			}
			r := prob.radialcoord(g.X(j), g.Y(k))
			if r >= domeR && v != 0 {
				tst.Errorf("nonzero thickness outside the dome at (%d,%d)\n", j, k)
				return
			}
		}
	}
	chk.Float64(tst, "max thickness", 50.0, hmax, domeH0)
}

func Test_dome02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dome02. compatible mass balance")

	par := NewParams()
	par.Verif = true
	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(3)
	prob, err := New(g, par, nil)
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	// accumulation near the center, ablation near the margin
	xc := par.L / 2.0
	if prob.DomeCMB(xc+100.0e3, xc) <= 0 {
		tst.Errorf("mass balance near the center must be positive\n")
		return
	}
	if prob.DomeCMB(xc+700.0e3, xc) >= 0 {
		tst.Errorf("mass balance near the margin must be negative\n")
	}
}
