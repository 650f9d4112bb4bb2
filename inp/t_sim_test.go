// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read simulation file")

	sim := ReadSim("data/heat2d.sim")
	if sim == nil {
		tst.Errorf("cannot read simulation file\n")
		return
	}
	if chk.Verbose {
		io.Pforan("sim = %+v\n", sim)
	}

	// values from the file
	chk.StrAssert(sim.Key, "heat2d")
	chk.StrAssert(sim.Data.Encoder, "json")
	chk.StrAssert(sim.DirOut, "/tmp/gotopo")
	chk.IntAssert(sim.Problem.Ndim, 2)
	chk.Ints(tst, "nn", sim.Problem.Nn, []int{17, 9})
	chk.Vector(tst, "xlen", 1e-17, sim.Problem.Xlen, []float64{2, 1})
	chk.Scalar(tst, "volfrac", 1e-17, sim.Problem.Volfrac, 0.4)
	if !sim.Problem.RedInt {
		tst.Errorf("redint flag was not read\n")
	}
	chk.IntAssert(sim.Solver.Nlvls, 3)
	chk.Scalar(tst, "rtol", 1e-17, sim.Solver.Rtol, 1e-6)
	chk.StrAssert(sim.Solver.CoarseKind, "cholesky")
	if !sim.Restart.Enabled {
		tst.Errorf("restart flag was not read\n")
	}
	chk.StrAssert(sim.Restart.Workdir, "/tmp/gotopo")

	// defaults kept where the file is silent
	chk.Scalar(tst, "emin", 1e-17, sim.Problem.Emin, 1e-9)
	chk.Scalar(tst, "emax", 1e-17, sim.Problem.Emax, 1.0)
	chk.Scalar(tst, "penal", 1e-17, sim.Problem.Penal, 3.0)
	chk.Scalar(tst, "loadintensity", 1e-17, sim.Problem.LoadIntensity, 0.001)
	chk.Scalar(tst, "atol", 1e-60, sim.Solver.Atol, 1e-50)
	chk.Scalar(tst, "dtol", 1e-12, sim.Solver.Dtol, 1e5)
	chk.IntAssert(sim.Solver.NmaxIt, 200)
	chk.IntAssert(sim.Solver.Restart, 100)
	chk.IntAssert(sim.Solver.CoarseNmaxIt, 30)
	chk.Scalar(tst, "coarsertol", 1e-17, sim.Solver.CoarseRtol, 1e-8)
	chk.IntAssert(sim.Solver.SmoothSweeps, 4)
	chk.Scalar(tst, "smoothomega", 1e-17, sim.Solver.SmoothOmega, 2.0/3.0)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. default values")

	var prob ProblemData
	prob.SetDefault()
	chk.IntAssert(prob.Ndim, 2)
	chk.Scalar(tst, "volfrac", 1e-17, prob.Volfrac, 0.5)

	var sol SolverData
	sol.SetDefault()
	chk.StrAssert(sol.CoarseKind, "gmres")
	chk.IntAssert(sol.Nlvls, 4)

	var res RestartData
	res.SetDefault()
	if !res.Enabled {
		tst.Errorf("restart files must be enabled by default\n")
	}
	chk.StrAssert(res.Workdir, ".")
}
