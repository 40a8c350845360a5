// Copyright 2026 The P4pdes Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ice simulates ice sheet thickness evolution by the shallow ice
// approximation on a periodic square, with the thickness constrained to
// stay nonnegative. In verification mode the bed is flat and the errors
// against an exact dome solution are reported at the final time.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/hui-aqua/p4pdes/grid"
	"github.com/hui-aqua/p4pdes/ice"
	"github.com/hui-aqua/p4pdes/mdl/cmb"
	"github.com/hui-aqua/p4pdes/out"
	"github.com/hui-aqua/p4pdes/solver"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
		}
	}()

	// default parameters
	par := ice.NewParams()

	// input parameters
	refine := flag.Int("refine", 2, "refinement levels applied to the base 3x3 periodic grid")
	tf := flag.Float64("tf", par.Tf/par.SecPerA, "final time [a]")
	dtinit := flag.Float64("dtinit", par.DtInit/par.SecPerA, "initial time step [a]")
	asoft := flag.Float64("A", par.Asoft*par.SecPerA, "ice softness [Pa⁻ⁿ a⁻¹]")
	nglen := flag.Float64("n", par.Nglen, "Glen exponent of the ice flux term")
	delta := flag.Float64("delta", par.Delta, "dimensionless regularisation of the surface slope")
	eps := flag.Float64("eps", par.Eps, "regularisation of the diffusivity; 0 is most degenerate")
	lambda := flag.Float64("lambda", par.Lambda, "amount of upwinding; 0 is none and 1 is full")
	initmagic := flag.Float64("initmagic", par.InitMagic, "years multiplying the mass balance for the initial thickness [a]")
	verif := flag.Bool("verif", false, "flat bed with the exact dome solution; report errors at tf")
	cmbname := flag.String("cmb", "elevation", "climatic mass balance model")
	ela := flag.Float64("ela", 2000.0, "equilibrium line altitude of the cmb model [m]")
	zgrad := flag.Float64("zgrad", 0.004, "vertical gradient of the cmb model [1/a]")
	holdelev := flag.Float64("holdelev", 2250.0, "cmb is held constant above this elevation [m]")
	monitor := flag.Bool("monitor", false, "report volume and area after every accepted step")
	showr := flag.Bool("showr", false, "show convergence of the Newton iterations")
	fnkey := flag.String("o", "", "filename key for output files; empty disables output")
	flag.Parse()

	// message
	io.PfWhite("\nice: shallow ice approximation on a periodic square\n")
	io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"refinement levels", "refine", *refine,
		"final time [a]", "tf", *tf,
		"initial time step [a]", "dtinit", *dtinit,
		"ice softness [Pa⁻ⁿ a⁻¹]", "A", *asoft,
		"Glen exponent", "n", *nglen,
		"slope regularisation", "delta", *delta,
		"diffusivity regularisation", "eps", *eps,
		"amount of upwinding", "lambda", *lambda,
		"initial thickness magic [a]", "initmagic", *initmagic,
		"verification mode", "verif", *verif,
		"mass balance model", "cmb", *cmbname,
		"equilibrium line altitude [m]", "ela", *ela,
		"cmb vertical gradient [1/a]", "zgrad", *zgrad,
		"cmb hold elevation [m]", "holdelev", *holdelev,
		"per-step reports", "monitor", *monitor,
		"show iterations", "showr", *showr,
		"output filename key", "o", *fnkey,
	))

	// parameters
	par.Tf = *tf * par.SecPerA
	par.DtInit = *dtinit * par.SecPerA
	par.Asoft = *asoft / par.SecPerA
	par.Nglen = *nglen
	par.Delta = *delta
	par.Eps = *eps
	par.Lambda = *lambda
	par.InitMagic = *initmagic
	par.Verif = *verif
	err := par.Derive()
	if err != nil {
		chk.Panic("invalid parameters:\n%v", err)
	}

	// grid
	base, err := grid.NewPeriodic(3, 3, par.L, par.L)
	if err != nil {
		chk.Panic("cannot allocate grid:\n%v", err)
	}
	g := base.Refine(*refine)

	// mass balance model
	var m cmb.Model
	if !par.Verif {
		m, err = cmb.New(*cmbname)
		if err != nil {
			chk.Panic("cannot allocate cmb model:\n%v", err)
		}
		err = m.Init(dbf.Params{
			{N: "ela", V: *ela},
			{N: "zgrad", V: *zgrad},
			{N: "holdelev", V: *holdelev},
		})
		if err != nil {
			chk.Panic("cannot initialise cmb model:\n%v", err)
		}
	}

	// problem
	prob, err := ice.New(g, par, m)
	if err != nil {
		chk.Panic("cannot allocate problem:\n%v", err)
	}

	// initial state and lower bound H >= 0
	h := g.NewVec()
	prob.InitialH(h)
	lower := g.NewVec()

	// transient solver with coloring-based FD Jacobian
	fdj, err := solver.NewFDJacobian(g, 1, nil)
	if err != nil {
		chk.Panic("cannot allocate FD Jacobian:\n%v", err)
	}
	dat := solver.NewData()
	dat.ShowR = *showr
	trans := solver.NewTransient(dat, g.Size(), fdj.Nnz(), prob.AddToRhs, nil)
	defer trans.Free()
	trans.Lower = lower
	trans.SetFDJacobian(fdj)
	if *monitor {
		trans.Mon = func(step int, t float64, y la.Vector) {
			vol, area := diagnostics(g, y)
			io.Pf("%5d: t = %10.3f a   volume = %8.2f 1e3 km³   area = %8.2f 1e6 km²\n",
				step, t/par.SecPerA, vol/1.0e12, area/1.0e12)
		}
	}

	// run
	err = trans.Run(h, 0, par.Tf, par.DtInit)
	if err != nil {
		chk.Panic("time integration failed:\n%v", err)
	}

	// report
	vol, area := diagnostics(g, h)
	io.Pf("done on %d x %d grid after %d accepted steps (%d diverged):\n", g.Nx, g.Ny, trans.Naccept, trans.Ndiverg)
	io.Pf("  ice volume = %.2f 1e3 km³,  ice area = %.2f 1e6 km²\n", vol/1.0e12, area/1.0e12)
	if par.Verif {
		einf, eavg := prob.Errors(h)
		io.Pf("  errors: |H-Hexact|_inf = %.3f m,  |H-Hexact|_avg = %.3f m\n", einf, eavg)
	}

	// output files
	if *fnkey != "" {
		b := g.NewVec()
		prob.FormBed(b)
		s := g.NewVec()
		for i := 0; i < g.Size(); i++ {
			s[i] = b[i] + h[i]
		}
		save(out.SaveField(*fnkey+"-H.dat", g, h))
		save(out.SaveField(*fnkey+"-b.dat", g, b))
		save(out.FieldHTML(*fnkey+"-H.html", "ice thickness H", g, h))
		save(out.ProfilePNG(*fnkey+"-profile.png", "elevations along the mid row", "z [m]", g, g.Ny/2, []out.Curve{
			{Name: "surface", V: s},
			{Name: "bed", V: b},
		}))
	}
}

func save(err error) {
	if err != nil {
		chk.Panic("cannot save output:\n%v", err)
	}
}

// diagnostics returns the total ice volume and the ice covered area
func diagnostics(g *grid.Grid, h []float64) (vol, area float64) {
	darea := g.Dx * g.Dy
	for _, v := range h {
		vol += v * darea
		if v > 1.0 { // count cells with more than 1 m of ice
			area += darea
		}
	}
	return
}
