// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gotopo/fem"
	"github.com/cpmech/gotopo/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	writeChk := io.ArgToBool(2, true)

	// message
	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nGotopo -- Heat Conduction Topology Design\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"write restart files", "writeChk", writeChk,
		))
	}

	// profiling?
	defer utl.DoProf(false)()

	// simulation data and domain
	fem.Start(verbose)
	sim := inp.ReadSim(fnamepath)
	dom, err := fem.NewDomain(sim, nil)
	if err != nil {
		chk.Panic("cannot create domain:\n%v", err)
	}

	// evaluate the response at the uniform reference design
	nelems := dom.Grid.Nelems
	x := make([]float64, nelems)
	la.VecFill(x, sim.Problem.Volfrac)
	dfdx := make([]float64, nelems)
	dgdx := make([]float64, nelems)
	fx, gx, err := dom.ComputeObjectiveConstraintsSensitivities(x, dfdx, dgdx,
		sim.Problem.Emin, sim.Problem.Emax, sim.Problem.Penal, sim.Problem.Volfrac)
	if err != nil {
		chk.Panic("evaluation failed:\n%v", err)
	}
	if writeChk {
		err = dom.WriteRestartFiles()
		if err != nil {
			chk.Panic("cannot write restart files:\n%v", err)
		}
	}

	// results
	if fem.Global.Root {
		io.PfGreen("objective  fx = %23.15e\n", fx)
		io.PfGreen("constraint gx = %23.15e\n", gx)
	}
}
