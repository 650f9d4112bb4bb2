// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gotopo
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" or "json"
}

// ProblemData holds the definition of the conduction design problem
type ProblemData struct {
	Ndim          int       `json:"ndim"`          // space dimension: 2 or 3
	Nn            []int     `json:"nn"`            // number of nodes along each axis
	Xlen          []float64 `json:"xlen"`          // domain extent along each axis
	Emin          float64   `json:"emin"`          // lower conductivity interpolation bound
	Emax          float64   `json:"emax"`          // upper conductivity interpolation bound
	Penal         float64   `json:"penal"`         // SIMP penalisation exponent
	Volfrac       float64   `json:"volfrac"`       // target volume fraction
	ImportGeo     bool      `json:"importgeo"`     // use imported-geometry passive regions for load/BC setup
	LoadIntensity float64   `json:"loadintensity"` // uniform body heat load
	RedInt        bool      `json:"redint"`        // reduced integration of the element matrix
}

// SolverData holds data for the multilevel iterative solver
type SolverData struct {

	// outer Krylov method
	Nlvls   int     `json:"nlvls"`   // number of multigrid levels
	Rtol    float64 `json:"rtol"`    // relative tolerance
	Atol    float64 `json:"atol"`    // absolute tolerance
	Dtol    float64 `json:"dtol"`    // divergence tolerance
	NmaxIt  int     `json:"nmaxit"`  // max number of outer iterations
	Restart int     `json:"restart"` // GMRES restart length

	// coarse grid solver
	CoarseKind   string  `json:"coarsekind"`   // "gmres" or "cholesky"
	CoarseRtol   float64 `json:"coarsertol"`   // coarse solver relative tolerance
	CoarseNmaxIt int     `json:"coarsenmaxit"` // coarse solver max iterations

	// per-level smoother
	SmoothSweeps int     `json:"smoothsweeps"` // fixed number of smoothing sweeps per level
	SmoothOmega  float64 `json:"smoothomega"`  // damping of the weighted-Jacobi smoother
}

// RestartData holds restart/checkpoint options
type RestartData struct {
	Enabled        bool   `json:"enabled"`        // write (and possibly read) restart files
	Workdir        string `json:"workdir"`        // directory holding the restart files
	RestartFileVec string `json:"restartfilevec"` // checkpoint to resume the state vector from
	OnlyLoadDesign bool   `json:"onlyloaddesign"` // do not load the state vector even if restart is enabled
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data        `json:"data"`    // global information
	Problem ProblemData `json:"problem"` // problem definition
	Solver  SolverData  `json:"solver"`  // solver parameters
	Restart RestartData `json:"restart"` // restart options

	// derived
	Key    string // simulation key; e.g. mysim01.sim => mysim01
	DirOut string // output directory
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string) *Simulation {

	// new sim
	var o Simulation

	// set default values
	o.Problem.SetDefault()
	o.Solver.SetDefault()
	o.Restart.SetDefault()

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key and output directory
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.ExpandEnv(dir), "results")
	}
	if o.Data.Encoder == "" {
		o.Data.Encoder = "gob"
	}
	return &o
}

// SetDefault sets default values
func (o *ProblemData) SetDefault() {
	o.Ndim = 2
	o.Emin = 1e-9
	o.Emax = 1.0
	o.Penal = 3.0
	o.Volfrac = 0.5
	o.LoadIntensity = 0.001
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {

	// outer Krylov method
	o.Nlvls = 4
	o.Rtol = 1e-5
	o.Atol = 1e-50
	o.Dtol = 1e5
	o.NmaxIt = 200
	o.Restart = 100

	// coarse grid solver
	o.CoarseKind = "gmres"
	o.CoarseRtol = 1e-8
	o.CoarseNmaxIt = 30

	// per-level smoother
	o.SmoothSweeps = 4
	o.SmoothOmega = 2.0 / 3.0
}

// SetDefault sets default values. Restart files are written by default;
// reading only happens when a checkpoint file is actually named.
func (o *RestartData) SetDefault() {
	o.Enabled = true
	o.Workdir = "."
}
