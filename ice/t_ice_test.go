// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ice

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/hui-aqua/p4pdes/grid"
	"github.com/hui-aqua/p4pdes/mdl/cmb"
	"github.com/hui-aqua/p4pdes/solver"
)

func Test_interp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp01. Q1 interpolant on a linear field")

	// f = 2x + 3y is reproduced exactly by the bilinear interpolant
	dx, dy := 0.5, 0.25
	f := func(x, y float64) float64 { return 2.0*x + 3.0*y }
	ff := [4]float64{f(0, 0), f(dx, 0), f(dx, dy), f(0, dy)}

	for _, pt := range [][2]float64{{0.5, 0.25}, {0.75, 0.5}, {0.1, 0.9}} {
		xi, eta := pt[0], pt[1]
		chk.Float64(tst, "field", 1e-15, fieldatpt(xi, eta, ff), f(xi*dx, eta*dy))
		g := gradfatpt(xi, eta, dx, dy, ff)
		chk.Float64(tst, "grad x", 1e-14, g.x, 2.0)
		chk.Float64(tst, "grad y", 1e-14, g.y, 3.0)
	}
}

func Test_bed01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bed01. synthetic bed elevation")

	par := NewParams()
	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(3)
	m, err := cmb.New("elevation")
	if err != nil {
		tst.Errorf("cmb allocation failed: %v\n", err)
		return
	}
	err = m.Init(nil)
	if err != nil {
		tst.Errorf("cmb initialisation failed: %v\n", err)
		return
	}
	prob, err := New(g, par, m)
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	// the sum of sines vanishes on the seam of the periodic domain
	chk.Float64(tst, "b(0,y)", 1e-10, prob.Bed(0, 0.3*par.L), 0)
	chk.Float64(tst, "b(L,y)", 1e-10, prob.Bed(par.L, 0.3*par.L), 0)
	chk.Float64(tst, "b(x,0)", 1e-10, prob.Bed(0.7*par.L, 0), 0)

	// amplitudes stay within a few times the scale factor
	for k := 0; k < g.Ny; k++ {
		for j := 0; j < g.Nx; j++ {
			b := prob.Bed(g.X(j), g.Y(k))
			if math.Abs(b) > 4000.0 {
				tst.Errorf("bed out of range: b = %g\n", b)
				return
			}
		}
	}

	// initial thickness from the chopped and scaled mass balance
	h := g.NewVec()
	prob.InitialH(h)
	for i, v := range h {
		if v < 0 {
			tst.Errorf("negative initial thickness at %d\n", i)
			return
		}
	}
}

func Test_ice01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ice01. discrete mass conservation")

	// the flux of every element face is counted once positively and
	// once negatively over a periodic grid, so the total residual
	// reduces to the mass balance and thickness rate terms
	par := NewParams()
	par.Verif = true
	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(2)
	prob, err := New(g, par, nil)
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	h := g.NewVec()
	prob.DomeThickness(h)
	hdot := g.NewVec()
	fb := g.NewVec()
	err = prob.AddToRhs(fb, h, hdot, 0)
	if err != nil {
		tst.Errorf("residual assembly failed: %v\n", err)
		return
	}

	sumFb, sumM := 0.0, 0.0
	darea := g.Dx * g.Dy
	for k := 0; k < g.Ny; k++ {
		for j := 0; j < g.Nx; j++ {
			r := g.Id(j, k)
			sumFb += fb[r]
			sumM += prob.DomeCMB(g.X(j), g.Y(k)) * darea
		}
	}
	chk.Float64(tst, "sum fb = sum m darea", 1e-4, sumFb, sumM)
}

func Test_ice02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ice02. dome verification run")

	par := NewParams()
	par.Verif = true
	par.Tf = 100.0 * par.SecPerA
	par.DtInit = 20.0 * par.SecPerA
	err := par.Derive()
	if err != nil {
		tst.Errorf("Derive failed: %v\n", err)
		return
	}

	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(2) // 12 x 12
	prob, err := New(g, par, nil)
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	fdj, err := solver.NewFDJacobian(g, 1, nil)
	if err != nil {
		tst.Errorf("NewFDJacobian failed: %v\n", err)
		return
	}
	dat := solver.NewData()
	trans := solver.NewTransient(dat, g.Size(), fdj.Nnz(), prob.AddToRhs, nil)
	defer trans.Free()
	trans.Lower = g.NewVec()
	trans.SetFDJacobian(fdj)

	h := g.NewVec()
	prob.InitialH(h)
	err = trans.Run(h, 0, par.Tf, par.DtInit)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}

	// the thickness must stay nonnegative and close to the exact dome
	// after a short integration started from it
	for i, v := range h {
		if v < 0 {
			tst.Errorf("negative thickness at %d: %g\n", i, v)
			return
		}
	}
	einf, eavg := prob.Errors(h)
	if eavg > 300.0 || einf > 2000.0 {
		tst.Errorf("errors too large: eavg = %g, einf = %g\n", eavg, einf)
	}
}

func Test_ice03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ice03. surface mass balance dispatch")

	par := NewParams()
	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(1)
	m, err := cmb.New("elevation")
	if err != nil {
		tst.Errorf("cmb allocation failed: %v\n", err)
		return
	}
	err = m.Init(dbf.Params{{N: "ela", V: 1000.0}})
	if err != nil {
		tst.Errorf("cmb initialisation failed: %v\n", err)
		return
	}
	prob, err := New(g, par, m)
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}
	chk.Float64(tst, "m at ela", 1e-20, prob.SurfaceMassBalance(0, 0, 1000.0), 0)
	if prob.SurfaceMassBalance(0, 0, 500.0) >= 0 {
		tst.Errorf("mass balance below the ela must be negative\n")
	}
}
