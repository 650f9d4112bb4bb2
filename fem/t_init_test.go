// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gotopo/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testSim builds a simulation structure for a small grid with default
// problem and solver parameters
func testSim(nn []int, xlen []float64, nlvls int) *inp.Simulation {
	sim := new(inp.Simulation)
	sim.Problem.SetDefault()
	sim.Solver.SetDefault()
	sim.Restart.SetDefault()
	sim.Problem.Ndim = len(nn)
	sim.Problem.Nn = nn
	sim.Problem.Xlen = xlen
	sim.Solver.Nlvls = nlvls
	sim.Data.Encoder = "gob"
	return sim
}
