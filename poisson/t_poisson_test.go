// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poisson

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/hui-aqua/p4pdes/grid"
	"github.com/hui-aqua/p4pdes/out"
	"github.com/hui-aqua/p4pdes/solver"
)

func Test_fish01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fish01. residual vanishes at the exact solution")

	// the 5-point stencil differentiates manupoly exactly, so the
	// discrete residual at the exact solution is zero up to rounding
	base, err := grid.NewNodeCentered(3, 3, 1.0, 1.0)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(2)
	prob, err := New(g, "manupoly")
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	u := g.NewVec()
	prob.SetExact(u)
	fb := g.NewVec()
	err = prob.AddToRhs(fb, u)
	if err != nil {
		tst.Errorf("residual assembly failed: %v\n", err)
		return
	}
	chk.Float64(tst, "largest residual", 1e-13, g.NormInf(fb), 0)
}

func Test_fish02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fish02. solve with polynomial solution")

	base, err := grid.NewNodeCentered(3, 3, 1.0, 1.0)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(3)
	prob, err := New(g, "manupoly")
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	u := g.NewVec()
	err = prob.Solve(solver.NewData(), u)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	einf, etwoh := prob.Errors(u)
	chk.Float64(tst, "einf", 1e-9, einf, 0)
	chk.Float64(tst, "etwoh", 1e-9, etwoh, 0)
}

func Test_fish03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fish03. second order convergence with manuexp")

	base, err := grid.NewNodeCentered(3, 3, 1.0, 1.0)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	var hs, errs []float64
	for _, levels := range []int{3, 4, 5} {
		g := base.Refine(levels)
		prob, err := New(g, "manuexp")
		if err != nil {
			tst.Errorf("problem allocation failed: %v\n", err)
			return
		}
		u := g.NewVec()
		err = prob.Solve(solver.NewData(), u)
		if err != nil {
			tst.Errorf("Solve failed: %v\n", err)
			return
		}
		einf, _ := prob.Errors(u)
		hs = append(hs, g.Dx)
		errs = append(errs, einf)
	}
	rate, err := out.ConvRate(hs, errs)
	if err != nil {
		tst.Errorf("ConvRate failed: %v\n", err)
		return
	}
	chk.Float64(tst, "convergence rate", 0.1, rate, 2.0)
}

func Test_fish04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fish04. analytic Jacobian vs FD coloring")

	base, err := grid.NewNodeCentered(3, 3, 1.0, 1.0)
	if err != nil {
		tst.Errorf("grid allocation failed: %v\n", err)
		return
	}
	g := base.Refine(1)
	prob, err := New(g, "manuexp")
	if err != nil {
		tst.Errorf("problem allocation failed: %v\n", err)
		return
	}

	n := g.Size()
	u := g.NewVec()
	prob.SetExact(u)

	kban := new(la.Triplet)
	kban.Init(n, n, prob.Nnz())
	err = prob.AddToKb(kban, u, true)
	if err != nil {
		tst.Errorf("analytic assembly failed: %v\n", err)
		return
	}

	fdj, err := solver.NewFDJacobian(g, 1, prob.AddToRhs)
	if err != nil {
		tst.Errorf("NewFDJacobian failed: %v\n", err)
		return
	}
	kbfd := new(la.Triplet)
	kbfd.Init(n, n, fdj.Nnz())
	err = fdj.AddToKb(kbfd, u, true)
	if err != nil {
		tst.Errorf("FD assembly failed: %v\n", err)
		return
	}

	chk.Deep2(tst, "J", 1e-6, kban.ToDense().GetDeep2(), kbfd.ToDense().GetDeep2())
}
