// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fish solves the Poisson equation -cx uxx - cy uyy = f on the unit
// square with Dirichlet boundary conditions, by 5-point finite
// differences and Newton iterations, and reports discretisation errors
// against a manufactured solution.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/hui-aqua/p4pdes/grid"
	"github.com/hui-aqua/p4pdes/out"
	"github.com/hui-aqua/p4pdes/poisson"
	"github.com/hui-aqua/p4pdes/solver"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// input parameters
	refine := flag.Int("refine", 3, "refinement levels applied to the base 3x3 grid")
	problem := flag.String("problem", "manuexp", io.Sf("manufactured solution; one of %v", poisson.Solutions()))
	lx := flag.Float64("lx", 1.0, "domain length along x")
	ly := flag.Float64("ly", 1.0, "domain length along y")
	cx := flag.Float64("cx", 1.0, "scale factor of the uxx term")
	cy := flag.Float64("cy", 1.0, "scale factor of the uyy term")
	initRandom := flag.Bool("init_random", false, "start the iterations from random values instead of zero")
	showr := flag.Bool("showr", false, "show convergence of the Newton iterations")
	fnkey := flag.String("o", "", "filename key for output files; empty disables output")
	flag.Parse()

	// message
	io.PfWhite("\nfish: 2D Poisson equation by structured-grid finite differences\n")
	io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"refinement levels", "refine", *refine,
		"manufactured solution", "problem", *problem,
		"domain length along x", "lx", *lx,
		"domain length along y", "ly", *ly,
		"scale factor of uxx", "cx", *cx,
		"scale factor of uyy", "cy", *cy,
		"random initial iterate", "init_random", *initRandom,
		"show iterations", "showr", *showr,
		"output filename key", "o", *fnkey,
	))

	// grid
	base, err := grid.NewNodeCentered(3, 3, *lx, *ly)
	if err != nil {
		chk.Panic("cannot allocate grid:\n%v", err)
	}
	g := base.Refine(*refine)

	// problem
	prob, err := poisson.New(g, *problem)
	if err != nil {
		chk.Panic("cannot allocate problem:\n%v", err)
	}
	prob.Cx, prob.Cy = *cx, *cy

	// initial iterate
	u := g.NewVec()
	if *initRandom {
		rnd.Init(0)
		for i := range u {
			u[i] = rnd.Float64(-1, 1)
		}
	}

	// solve
	dat := solver.NewData()
	dat.ShowR = *showr
	err = prob.Solve(dat, u)
	if err != nil {
		chk.Panic("solution failed:\n%v", err)
	}

	// errors
	einf, etwoh := prob.Errors(u)
	io.Pf("done on %d x %d grid:   error |u-uexact|_inf = %.3e, |u-uexact|_h = %.3e\n", g.Nx, g.Ny, einf, etwoh)

	// output files
	if *fnkey != "" {
		e := g.NewVec()
		prob.SetExact(e)
		for i := 0; i < g.Size(); i++ {
			e[i] = u[i] - e[i]
		}
		save(out.SaveField(*fnkey+"-u.dat", g, u))
		save(out.SaveField(*fnkey+"-err.dat", g, e))
		save(out.FieldHTML(*fnkey+"-u.html", "Poisson solution u", g, u))
		save(out.ProfilePNG(*fnkey+"-profile.png", "solution along the mid row", "u", g, g.Ny/2, []out.Curve{
			{Name: "u", V: u},
		}))
	}
}

func save(err error) {
	if err != nil {
		chk.Panic("cannot save output:\n%v", err)
	}
}
