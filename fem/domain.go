// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the steady-state heat-conduction response and its
// design sensitivities for SIMP topology optimization on structured grids
package fem

import (
	"math"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/gotopo/inp"
	"github.com/cpmech/gotopo/msh"
	"github.com/cpmech/gotopo/shp"
)

// Global holds global data
var Global struct {
	Rank    int  // my rank in distributed cluster
	Nproc   int  // number of processors
	Root    bool // am I root? (i.e. myrank == 0)
	Distr   bool // distributed simulation with more than one mpi processor
	Verbose bool // verbose == root
}

// Start initialises Global data
func Start(verbose bool) {
	Global.Rank = 0
	Global.Nproc = 1
	Global.Root = true
	Global.Distr = false
	if mpi.IsOn() {
		Global.Rank = mpi.Rank()
		Global.Nproc = mpi.Size()
		Global.Root = Global.Rank == 0
		Global.Distr = Global.Nproc > 1
	}
	Global.Verbose = verbose && Global.Root
}

// Passive holds the per-element flags marking elements outside the free
// design domain. The fields are 0/1 valued and owned by the caller
// (the optimizer); this package only reads them.
type Passive struct {
	Solid  []float64 // flag 0: forced-full elements
	Fixed  []float64 // flag 1: fixed (excluded-structural) elements
	Loaded []float64 // flag 2: loaded (excluded-structural) elements
}

// NewPassive returns all-clear passive flags for nelems elements
func NewPassive(nelems int) *Passive {
	return &Passive{
		Solid:  make([]float64, nelems),
		Fixed:  make([]float64, nelems),
		Loaded: make([]float64, nelems),
	}
}

// IsFree tells whether element e belongs to the free design domain
func (o *Passive) IsFree(e int) bool {
	return o.Solid[e] == 0 && o.Fixed[e] == 0 && o.Loaded[e] == 0
}

// Domain holds the grid, the cached element matrix, the global conductivity
// matrix, the load vector, the Dirichlet mask and the temperature field of
// one conduction design problem. The matrix, load vector and temperature
// field are exclusively owned by this structure for the grid's lifetime.
type Domain struct {

	// input
	Sim  *inp.Simulation // simulation data
	Grid *msh.Grid       // structured nodal grid (finest level)
	Shp  *shp.Shape      // qua4 or hex8 shape structure
	Pass *Passive        // passive element flags (read-only)

	// element matrix: computed once, reused with per-element scaling
	KE [][]float64 // [nen][nen] unit-conductivity element matrix

	// global system
	Kt   *la.Triplet  // global conductivity matrix (triplet form)
	Kmat *la.CCMatrix // compressed form of Kt, refreshed every assembly
	Kdia []float64    // diagonal of the assembled matrix (for smoothers)
	RHS  []float64    // load vector; masked at fixed rows
	U    []float64    // temperature field; persists as initial guess
	N    []float64    // Dirichlet mask: 1.0 free, 0.0 fixed

	// solver
	Solver *SolverContext // lazily configured multilevel solver

	// checkpoint double buffer
	flip bool   // selects which checkpoint file receives the next write
	fn0  string // first checkpoint file
	fn1  string // second checkpoint file
}

// NewDomain creates the domain: grid, cached element matrix, Dirichlet mask
// and load vector. The mask and load vector are finalised before return; the
// only further mutation is the load-vector masking done at every assembly.
func NewDomain(sim *inp.Simulation, pass *Passive) (o *Domain, err error) {

	// grid
	o = &Domain{Sim: sim, Pass: pass}
	o.Grid, err = msh.NewGrid(sim.Problem.Nn, sim.Problem.Xlen)
	if err != nil {
		return nil, chk.Err("cannot create grid:\n%v", err)
	}
	if pass == nil {
		o.Pass = NewPassive(o.Grid.Nelems)
	} else {
		chk.IntAssert(len(pass.Solid), o.Grid.Nelems)
		chk.IntAssert(len(pass.Fixed), o.Grid.Nelems)
		chk.IntAssert(len(pass.Loaded), o.Grid.Nelems)
	}

	// shape structure and element conductivity matrix, constant due to the
	// structured grid: computed from the first element's geometry
	o.Shp = shp.Get(o.Grid.ShapeType())
	if o.Shp == nil {
		return nil, chk.Err("cannot get %q shape structure", o.Grid.ShapeType())
	}
	o.KE = la.MatAlloc(o.Grid.Nen, o.Grid.Nen)
	err = o.Shp.CalcConductM(o.KE, o.Grid.ElemCoords(0), sim.Problem.RedInt)
	if err != nil {
		return nil, chk.Err("cannot compute element conductivity matrix:\n%v", err)
	}

	// allocate global system
	nn := o.Grid.Nnodes
	o.Kt = new(la.Triplet)
	o.Kt.Init(nn, nn, o.Grid.Nelems*o.Grid.Nen*o.Grid.Nen+nn)
	o.Kdia = make([]float64, nn)
	o.RHS = make([]float64, nn)
	o.U = make([]float64, nn)
	o.N = make([]float64, nn)

	// checkpoint double buffer
	o.fn0 = filepath.Join(sim.Restart.Workdir, "RestartSol00.dat")
	o.fn1 = filepath.Join(sim.Restart.Workdir, "RestartSol01.dat")
	o.flip = true

	// load and BCs
	o.setUpLoadAndBC()
	return
}

// setUpLoadAndBC populates the Dirichlet mask and the load vector following
// one of two scenarios. Post-condition (both scenarios): N and RHS are fully
// populated.
func (o *Domain) setUpLoadAndBC() {
	la.VecFill(o.N, 1.0)
	la.VecFill(o.RHS, 0.0)
	if o.Sim.Problem.ImportGeo {
		o.setUpImportedGeometry()
		return
	}
	o.setUpDefaultScenario()
}

// setUpDefaultScenario clamps the nodes within the [3/8, 5/8] sub-rectangle
// of the bottom face and applies a uniform body heat load over all elements,
// split equally across the element-local degrees of freedom
func (o *Domain) setUpDefaultScenario() {

	// tolerance for finding points in space: 5% of the smallest element edge
	epsi := 0.05 * o.Grid.MinDx()

	// clamped area on the bottom face (y == 0)
	lx := o.Grid.Xlen[0]
	for n := 0; n < o.Grid.Nnodes; n++ {
		x := o.Grid.Coords[0][n]
		y := o.Grid.Coords[1][n]
		if math.Abs(y) < epsi && x >= lx/8.0*3.0 && x <= lx/8.0*5.0 {
			if o.Grid.Ndim == 3 {
				lz := o.Grid.Xlen[2]
				z := o.Grid.Coords[2][n]
				if z < lz/8.0*3.0 || z > lz/8.0*5.0 {
					continue
				}
			}
			o.N[n] = 0.0
		}
	}

	// body load: loop over elements so boundary and corner nodes need no
	// special treatment
	q := o.Sim.Problem.LoadIntensity / float64(o.Grid.Nen)
	for e := 0; e < o.Grid.Nelems; e++ {
		for _, n := range o.Grid.Econ[e] {
			o.RHS[n] += q
		}
	}
}

// setUpImportedGeometry derives the load vector and Dirichlet mask from the
// passive flags: elements outside the solid domain receive the body load at
// every local degree of freedom; fixed-flagged elements have their local
// degrees of freedom clamped
func (o *Domain) setUpImportedGeometry() {
	q := o.Sim.Problem.LoadIntensity
	for e := 0; e < o.Grid.Nelems; e++ {
		if o.Pass.Solid[e] == 0 {
			for _, n := range o.Grid.Econ[e] {
				o.RHS[n] += q
			}
		}
		if o.Pass.Fixed[e] == 1 {
			for _, n := range o.Grid.Econ[e] {
				o.N[n] = 0.0
			}
		}
	}
}
